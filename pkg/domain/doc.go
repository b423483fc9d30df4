/*
Package domain contains the core domain models of the skilltree engine.

It defines the component taxonomy, the typed settings values, the immutable
component tree and the skill definition, together with the collaborator
contracts (entities, casters, worlds) the interpreter talks to. This package is
kept pure and free of I/O or persistence concerns.

# Key Entities

  - Category: One of the seven node categories (Trigger, Target, Filter, Condition, Mechanic, Cost, Cooldown).
  - Value / Settings: Typed configuration values resolved once at load time.
  - Tree / Node: An arena of nodes addressed by index, frozen after compilation.
  - Skill: The registry entry wrapping a validated tree.
  - Entity / Caster / World: The game-state boundary consumed by components.
*/
package domain
