package sim

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/boxdrop/internal/physics"
)

var _ = Describe("World", func() {
	var (
		w      *World
		bounds physics.Bounds
	)

	BeforeEach(func() {
		w = New(physics.DefaultTuning())
		bounds = physics.NewBounds(800, 450)
	})

	Describe("pointer interaction", func() {
		It("holds a spawned rectangle outside the simulation", func() {
			r, err := w.SpawnRectangle(50, 50, 10, 10, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(w.Held()).To(BeIdenticalTo(physics.Body(r)))
			Expect(w.Len()).To(Equal(0))

			w.Tick(1.0/60, bounds)
			Expect(r.Pos).To(Equal(physics.V(50, 50)))
		})

		It("drags the held body", func() {
			r, _ := w.SpawnRectangle(50, 50, 10, 10, 10)
			w.Drag(120, 80)
			Expect(r.Pos).To(Equal(physics.V(120, 80)))
		})

		It("applies gravity on release and appends in spawn order", func() {
			first, _ := w.SpawnRectangle(10, 10, 10, 10, 10)
			Expect(first.Acc).To(Equal(physics.Vec2{}))
			Expect(w.Release()).To(BeIdenticalTo(physics.Body(first)))
			second, _ := w.SpawnRectangle(30, 10, 10, 10, 10)
			w.Release()

			Expect(first.Acc.Y).To(BeNumerically("==", physics.DefaultGravity))
			Expect(w.Held()).To(BeNil())
			Expect(w.Bodies()).To(Equal([]physics.Body{first, second}))
		})

		It("ignores release and drag when nothing is held", func() {
			w.Drag(1, 1)
			Expect(w.Release()).To(BeNil())
			Expect(w.Len()).To(Equal(0))
		})

		It("replaces the held body on a second spawn", func() {
			w.SpawnRectangle(10, 10, 10, 10, 10)
			second, _ := w.SpawnRectangle(20, 20, 10, 10, 10)
			Expect(w.Release()).To(BeIdenticalTo(physics.Body(second)))
			Expect(w.Len()).To(Equal(1))
		})

		It("surfaces construction errors unchanged", func() {
			_, err := w.SpawnRectangle(10, 10, -1, 10, 10)
			Expect(errors.Is(err, physics.ErrInvalidArgument)).To(BeTrue())
			Expect(w.Held()).To(BeNil())
		})

		It("uses the current tuning's gravity", func() {
			w.SetTuning(physics.Tuning{Gravity: 162, Restitution: 0.3, GroundFriction: 0.9})
			r, _ := w.SpawnRectangle(10, 10, 10, 10, 10)
			w.Release()
			Expect(r.Acc.Y).To(BeNumerically("==", 162))
		})
	})

	Describe("Tick", func() {
		It("matches closed-form semi-implicit Euler in free fall", func() {
			r, _ := w.SpawnRectangle(50, 50, 10, 10, 10)
			w.Release()

			const n = 30
			dt := float32(1.0 / 60)
			for i := 0; i < n; i++ {
				w.Tick(dt, bounds)
			}

			g := float64(physics.DefaultGravity)
			h := float64(dt)
			expectedV := n * g * h
			expectedY := 50 + g*h*h*float64(n*(n-1))/2

			Expect(float64(r.Vel.Y)).To(BeNumerically("~", expectedV, 1e-2))
			Expect(float64(r.Pos.Y)).To(BeNumerically("~", expectedY, 1e-2))
			Expect(r.Pos.X).To(BeNumerically("==", 50))
			Expect(w.Ticks()).To(Equal(n))
			Expect(w.Time()).To(BeNumerically("~", n*h, 1e-6))
		})

		It("never lets a falling body tunnel through the floor", func() {
			r, _ := w.SpawnRectangle(50, 50, 10, 10, 10)
			w.Release()

			for i := 0; i < 600; i++ {
				w.Tick(1.0/60, bounds)
				Expect(r.Bottom()).To(BeNumerically("<=", bounds.Bottom+1e-3))
				Expect(r.Top()).To(BeNumerically(">=", bounds.Top))
			}
		})

		It("detects pairs after boundary resolution", func() {
			// b starts past the floor; only the clamped position overlaps a
			a, _ := physics.NewRectangle(100, 440, 10, 10, 1)
			b, _ := physics.NewRectangle(104, 452, 10, 10, 1)
			w.Add(a)
			w.Add(b)

			w.Tick(1.0/60, bounds)

			Expect(w.DetectedPairs()).To(Equal([]physics.Pair{{I: 0, J: 1}}))
		})

		It("reports touching bodies as separate", func() {
			a, _ := physics.NewRectangle(100, 100, 10, 10, 1)
			b, _ := physics.NewRectangle(110, 100, 10, 10, 1)
			w.Add(a)
			w.Add(b)

			w.Tick(1.0/60, bounds)

			Expect(w.DetectedPairs()).To(BeEmpty())
		})

		It("detects without separating overlapping bodies", func() {
			a, _ := physics.NewRectangle(100, 100, 10, 10, 1)
			b, _ := physics.NewRectangle(105, 100, 10, 10, 1)
			w.Add(a)
			w.Add(b)

			for i := 0; i < 10; i++ {
				w.Tick(1.0/60, bounds)
			}

			Expect(a.Pos).To(Equal(physics.V(100, 100)))
			Expect(b.Pos).To(Equal(physics.V(105, 100)))
			Expect(w.DetectedPairs()).To(HaveLen(1))
		})

		It("gives the same pairs with parallel detection", func() {
			for i := 0; i < 40; i++ {
				r, _ := physics.NewRectangle(float32(20+i*7), 200, 10, 10, 1)
				w.Add(r)
			}
			w.Tick(1.0/60, bounds)
			sequential := w.DetectedPairs()

			w.SetWorkers(4)
			w.Tick(1.0/60, bounds)

			Expect(w.DetectedPairs()).To(Equal(sequential))
			Expect(sequential).To(HaveLen(39))
		})

		It("notifies metrics and observers once per tick", func() {
			m := &countingMetric{}
			o := &countingMetric{}
			w.AddMetric(m)
			w.AddObserver(o)

			w.Tick(0.1, bounds)
			w.Tick(0.1, bounds)

			Expect(m.ticks).To(Equal(2))
			Expect(o.ticks).To(Equal(2))
			Expect(o.lastT).To(BeNumerically("~", 0.2, 1e-6))
		})
	})

	Describe("Reset", func() {
		It("drops bodies and rewinds the clock", func() {
			m := &countingMetric{}
			w.AddMetric(m)
			w.SpawnRectangle(10, 10, 10, 10, 10)
			w.Release()
			w.SpawnRectangle(10, 10, 10, 10, 10)
			w.Tick(0.1, bounds)

			w.Reset()

			Expect(w.Len()).To(Equal(0))
			Expect(w.Held()).To(BeNil())
			Expect(w.Time()).To(BeZero())
			Expect(w.Ticks()).To(BeZero())
			Expect(w.DetectedPairs()).To(BeEmpty())
			Expect(m.ticks).To(BeZero())
		})
	})
})

type countingMetric struct {
	ticks int
	lastT float64
}

func (c *countingMetric) Name() string { return "ticks" }
func (c *countingMetric) Observe(bodies []physics.Body, pairs []physics.Pair, t float64) {
	c.ticks++
	c.lastT = t
}
func (c *countingMetric) OnTick(bodies []physics.Body, pairs []physics.Pair, t float64) {
	c.Observe(bodies, pairs, t)
}
func (c *countingMetric) Value() float64 { return float64(c.ticks) }
func (c *countingMetric) Reset()         { c.ticks = 0; c.lastT = 0 }
