/*
Package ports defines the driven ports (interfaces) for the skilltree engine.

These interfaces decouple the engine from external implementations, allowing it
to work with various skill sources and state backends.

# Key Interfaces

  - SkillLoader: Responsible for loading raw skill documents (e.g., from a directory or memory).
  - CooldownStore: Owns the per (caster, skill) cooldown table as an expiring lock.
  - SkillRecords: Owns which casters hold which skills; consulted when a reload removes skills.
  - CasterLocker: Serializes one caster's casts across replicas sharing a cooldown store.
*/
package ports
