package game

type Option func(g *Game)

func WithShopSize(size int) Option {
	return func(g *Game) {
		if size > 0 {
			g.shopSize = size
		}
	}
}

// WithSafeCards sets how many rooms are kept on top of the deck, free of
// disasters.
func WithSafeCards(safe int) Option {
	return func(g *Game) {
		if safe > 0 {
			g.safeCards = safe
		}
	}
}

func WithDisasters(n int) Option {
	return func(g *Game) {
		if n >= 0 {
			g.numDisasters = n
		}
	}
}

func WithCatastrophes(n int) Option {
	return func(g *Game) {
		if n >= 0 {
			g.numCatastrophes = n
		}
	}
}
