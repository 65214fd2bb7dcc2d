package brawler

// Projectile sprite kinds.
const (
	ProjectileChip     = "chip"
	ProjectileDumbbell = "dumbbell"
	ProjectileProtein  = "protein"
	ProjectileOil      = "oil"
)

// ProjectileSpec configures a new projectile. Zero fields take defaults:
// 8x8, damage 10, life 180.
type ProjectileSpec struct {
	W, H       float64
	Damage     float64
	Life       int
	Gravity    float64
	FromPlayer bool
	Stun       int
	Color      string
	Kind       string
}

// Projectile is a ballistic entity with a lifetime.
type Projectile struct {
	Body
	Gravity    float64
	Damage     float64
	Life       int
	FromPlayer bool
	Stun       int
	Color      string
	Kind       string
}

// NewProjectile creates a projectile at (x, y) moving at (vx, vy).
func NewProjectile(x, y, vx, vy float64, spec ProjectileSpec) *Projectile {
	p := &Projectile{
		Body:       Body{X: x, Y: y, W: spec.W, H: spec.H, VX: vx, VY: vy},
		Gravity:    spec.Gravity,
		Damage:     spec.Damage,
		Life:       spec.Life,
		FromPlayer: spec.FromPlayer,
		Stun:       spec.Stun,
		Color:      spec.Color,
		Kind:       spec.Kind,
	}
	if p.W == 0 {
		p.W = 8
	}
	if p.H == 0 {
		p.H = 8
	}
	if p.Damage == 0 {
		p.Damage = 10
	}
	if p.Life == 0 {
		p.Life = 180
	}
	if p.Color == "" {
		p.Color = "#ff4444"
	}
	return p
}

// Update integrates one tick and ages the projectile.
func (p *Projectile) Update() {
	p.VY += p.Gravity
	p.X += p.VX
	p.Y += p.VY
	p.Life--
	if p.Life <= 0 {
		p.Dead = true
	}
}

// CheckTileCollision kills the projectile when its center is inside a solid
// tile.
func (p *Projectile) CheckTileCollision(tm *TileMap) {
	if tm.IsSolidAt(p.CenterX(), p.CenterY()) {
		p.Dead = true
	}
}
