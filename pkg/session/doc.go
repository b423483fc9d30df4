/*
Package session serializes the casts of each caster.

A cast reads the cooldown table, charges costs and then starts the cooldown.
Two casts of the same caster running at once could both pass the read, so the
engine runs every cast and passive application inside the caster's session
lock. Locks are reference counted and dropped when idle. With a
ports.CasterLocker the lock also spans every engine instance sharing it.
*/
package session
