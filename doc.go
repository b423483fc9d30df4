/*
Package skilltree is a component-tree execution engine for RPG skills.

A skill is a declaratively authored tree of typed nodes (trigger, target,
filter, condition, mechanic, cost, cooldown). Trees are structurally validated
at load time and traversed at cast time to decide, for a caster and a skill
level, which entities are affected and whether the cast is permitted at all.

# Concept

The engine owns the grammar, the validator and the interpreter. The host game
owns everything else and plugs it in through small interfaces: the world
(entity lookup and clock), casters (resources), mechanic effects (damage,
potions, particles) and optionally the stores for cooldowns and learned
skills.

# Authoring

Skills are YAML or JSON documents:

	id: firebolt
	name: Firebolt
	max-level: 5
	components:
	  - type: trigger
	    components:
	      - type: cost
	        key: mana
	        settings: {mana: 10, mana-per-level: 2}
	      - type: cooldown
	        settings: {cooldown: 4}
	      - type: target
	        key: nearest-hostile
	        settings: {range: 8}
	        components:
	          - type: mechanic
	            key: damage
	            settings: {amount: 6}

Numeric settings are level-dependent: key is the base value, key-per-level
scales it, key-min and key-max clamp it.

# Usage

	effects := registry.NewEffects()
	effects.Register("damage", func(c *domain.Cast, subject domain.Entity, s domain.Settings) error {
		// apply damage in the host game
		return nil
	})

	eng, err := skilltree.New("./skills",
		skilltree.WithEffects(effects),
		skilltree.WithWorld(world),
	)
	if err != nil {
		log.Fatal(err)
	}
	if _, err := eng.Reload(ctx); err != nil {
		log.Fatal(err)
	}

	res, err := eng.Cast(ctx, player, "firebolt", 3)
	if err != nil {
		log.Fatal(err)
	}
	if !res.Success {
		log.Printf("cast failed: %s", res.Reason)
	}
*/
package skilltree
