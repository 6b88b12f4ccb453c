package console

type ConsoleOpt func(*Console)

// WithEvents streams published events matching subject to every session.
func WithEvents(sub Subscriber, subject string) ConsoleOpt {
	return func(c *Console) {
		c.events = sub
		if subject != "" {
			c.subject = subject
		}
	}
}

// WithProgression lets the console read and change the depth.
func WithProgression(p ProgressionStore) ConsoleOpt {
	return func(c *Console) {
		c.progress = p
	}
}

// WithSavePath sets where save and load read and write the world.
func WithSavePath(path string) ConsoleOpt {
	return func(c *Console) {
		c.savePath = path
	}
}

// WithMaxHP sets the health of new session actors.
func WithMaxHP(hp int) ConsoleOpt {
	return func(c *Console) {
		c.maxHP = hp
	}
}

// WithExplosion sets the radius and force of the explode command.
func WithExplosion(radius, force float32) ConsoleOpt {
	return func(c *Console) {
		c.explosionRadius = radius
		c.explosionForce = force
	}
}
