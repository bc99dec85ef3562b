package yuletide

import (
	"math"

	"github.com/aquilax/go-perlin"
)

const (
	forestSpacing = 10
	houseSpacing  = 120
	chimneyW      = 8
	chimneyH      = 12
	smokeChance   = 0.04
	smokeDecay    = 0.005
	smokeGrowth   = 0.03
	maxSmoke      = 512
	fogBand       = 150
)

var (
	forestColor = Color{5.0 / 255, 10.0 / 255, 20.0 / 255, 0.6}
	houseColor  = MustHex("#0d1117")
	roofSnow    = ColorWhite.WithAlpha(0.9)
	smokeColor  = MustHex("#F0F0F0")
)

type silhouette struct {
	x, width, height float64
}

type house struct {
	x, width, height, roof float64
	chimney                bool
	windows                []Rect
	flicker                float64
}

// chimneyTop returns the smoke origin of h for a ground line at y.
func (h *house) chimneyTop(ground float64) (float64, float64) {
	cx := h.x + h.width*0.7
	cy := ground - h.height - h.roof*0.4
	return cx + chimneyW/2, cy - chimneyH
}

type fogBlob struct {
	x, y    float64
	radius  float64
	speed   float64
	opacity float64
	seed    float64
}

// village is the midground: drifting fog, the forest silhouette, and a row
// of houses whose windows flicker and whose chimneys smoke. Structures are
// generated once per reset; only fog, flicker and smoke animate.
type village struct {
	forest []silhouette
	houses []house
	fog    []fogBlob
	smoke  motePool
	noise  *perlin.Perlin
	frame  float64
	ground float64
	width  float64
	roof   [3]Vec2
}

func newVillage(seed int64) village {
	return village{
		smoke: newMotePool(maxSmoke),
		noise: perlin.NewPerlin(2, 2, 3, seed),
	}
}

func (v *village) reset(env *skyEnv) {
	r := env.rng
	v.ground = env.h
	v.width = env.w
	v.frame = 0
	v.smoke.reset()

	n := int(env.w / forestSpacing)
	v.forest = v.forest[:0]
	for i := 0; i < n; i++ {
		v.forest = append(v.forest, silhouette{
			x:      float64(i)*forestSpacing + jitter(r, 10),
			width:  between(r, 15, 25),
			height: between(r, 40, 100),
		})
	}

	v.houses = v.houses[:0]
	slots := int(env.w/houseSpacing) + 2
	for i := 0; i < slots; i++ {
		if r.Float64() > 0.7 {
			continue
		}
		h := house{
			x:      float64(i)*houseSpacing + jitter(r, 40),
			width:  between(r, 50, 80),
			height: between(r, 30, 55),
			roof:   between(r, 15, 25),
		}
		rows, cols := int(h.height/18), int(h.width/18)
		for row := 0; row < rows; row++ {
			for col := 0; col < cols; col++ {
				if r.Float64() > 0.2 {
					h.windows = append(h.windows, Rect{
						X: 6 + float64(col)*16, Y: 8 + float64(row)*16,
						Width: 8, Height: 10,
					})
				}
			}
		}
		h.chimney = r.Float64() > 0.3
		h.flicker = 1
		v.houses = append(v.houses, h)
	}

	v.fog = v.fog[:0]
	for i := 0; i < env.cfg.FogBlobs; i++ {
		v.fog = append(v.fog, fogBlob{
			x:       r.Float64() * env.w,
			y:       env.h - r.Float64()*fogBand,
			radius:  between(r, 50, 150),
			speed:   jitter(r, 0.2),
			opacity: between(r, 0.05, 0.15),
			seed:    r.Float64() * 100,
		})
	}
}

func (v *village) update(env *skyEnv) {
	r := env.rng
	v.frame++

	for i := range v.fog {
		f := &v.fog[i]
		f.x += f.speed
		if f.x > env.w+f.radius {
			f.x = -f.radius
		}
		if f.x < -f.radius {
			f.x = env.w + f.radius
		}
	}

	for i := range v.houses {
		h := &v.houses[i]
		h.flicker = between(r, 0.7, 1.0)
		if h.chimney && chance(r, smokeChance) {
			x, y := h.chimneyTop(v.ground)
			v.smoke.spawn(mote{
				x:    x,
				y:    y,
				vy:   -between(r, 0.4, 0.8),
				life: 1,
				size: between(r, 2, 4),
			})
		}
	}

	phase := v.frame * 0.033
	v.smoke.update(func(m *mote) {
		m.y += m.vy
		m.x += math.Sin(phase+m.y*0.05) * 0.3
		m.life -= smokeDecay
		m.size += smokeGrowth
	})
}

// shimmer modulates fog opacity with slow coherent noise.
func (v *village) shimmer(f *fogBlob) float64 {
	n := v.noise.Noise1D(f.seed + v.frame*0.004)
	return clamp01(f.opacity * (1 + n))
}

func (v *village) draw(dst Surface, pal Palette) {
	for i := range v.fog {
		f := &v.fog[i]
		dst.Glow(f.x, f.y, f.radius, f.radius, pal.Fog.WithAlpha(v.shimmer(f)), BlendScreen)
	}

	for _, t := range v.forest {
		v.roof = [3]Vec2{
			{t.x, v.ground - t.height},
			{t.x - t.width/2, v.ground},
			{t.x + t.width/2, v.ground},
		}
		dst.FillPolygon(v.roof[:], forestColor, BlendNormal)
	}

	for _, m := range v.smoke.motes {
		dst.FillCircle(m.x, m.y, m.size, smokeColor.WithAlpha(m.life*0.3), BlendNormal)
	}

	for i := range v.houses {
		v.drawHouse(dst, &v.houses[i], pal)
	}
}

func (v *village) drawHouse(dst Surface, h *house, pal Palette) {
	top := v.ground - h.height
	dst.FillRect(h.x, top, h.width, h.height, houseColor, BlendNormal)
	v.roof = [3]Vec2{
		{h.x - 4, top},
		{h.x + h.width/2, top - h.roof},
		{h.x + h.width + 4, top},
	}
	dst.FillPolygon(v.roof[:], houseColor, BlendNormal)
	dst.StrokePolyline(v.roof[:], 4, roofSnow, BlendNormal)

	if h.chimney {
		cx := h.x + h.width*0.7
		cy := top - h.roof*0.4
		dst.FillRect(cx, cy-chimneyH, chimneyW, chimneyH, houseColor, BlendNormal)
	}

	c := pal.Window.WithAlpha(h.flicker)
	for _, w := range h.windows {
		dst.FillRect(h.x+w.X, top+w.Y, w.Width, w.Height, c, BlendNormal)
	}
}
