// Package domain contains the core business entities, value objects, and
// domain logic of the task tracker. It represents the heart of the system,
// independent of any specific infrastructure or delivery mechanism.
//
// The central entity is Task; its validation rules and status lifecycle
// live here so every layer above shares one definition of a valid task.
package domain
