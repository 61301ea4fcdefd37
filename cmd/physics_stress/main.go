// Stress test timing physics steps and ground probes over the test zone
// as the number of loose props grows.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"charrig/internal/engine"
	"charrig/internal/physics"
	"charrig/internal/world"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	stepIterations  = 100
	probeIterations = 1000
)

func main() {
	testCounts := []int{0, 100, 500, 1000, 2000, 5000}

	for _, count := range testCounts {
		if err := testZone(count); err != nil {
			fmt.Printf("%5d props: ERROR: %v\n", count, err)
		}
	}
}

func testZone(count int) error {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	scene := engine.NewScene("Stress")
	phys := physics.NewWorld(scene, logger)

	zone, err := world.DefaultZone()
	if err != nil {
		return err
	}
	if _, err := world.Build(phys, zone); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(42)) // Consistent results

	// Drop props over the floor, stacked higher as count grows
	spawnHeight := 5.0 + float64(count)/100.0
	for i := 0; i < count; i++ {
		pos := r3.Vec{
			X: rng.Float64()*50 - 25,
			Y: 1 + rng.Float64()*spawnHeight,
			Z: rng.Float64()*50 - 25,
		}
		e := scene.Spawn(fmt.Sprintf("Prop_%d", i), engine.NewTransform(pos), "prop")
		phys.AddCollider(e, physics.NewSphereCollider(0.25+rng.Float64()*0.25, physics.GroupsFor(physics.Prop)))
		phys.AddBody(e, physics.Body{Kind: physics.Dynamic, GravityScale: 1})
	}

	const dt = 1.0 / 64.0

	// Warm up
	if err := phys.Step(dt); err != nil {
		return err
	}

	stepStart := time.Now()
	for i := 0; i < stepIterations; i++ {
		if err := phys.Step(dt); err != nil {
			return err
		}
	}
	stepTime := time.Since(stepStart) / stepIterations

	probeStart := time.Now()
	hits := 0
	for i := 0; i < probeIterations; i++ {
		origin := r3.Vec{X: rng.Float64()*50 - 25, Y: 10, Z: rng.Float64()*50 - 25}
		if _, ok := phys.CastRay(origin, r3.Vec{Y: -1}, 20, true, physics.FilterGroups(physics.GroundProbe)); ok {
			hits++
		}
	}
	probeTime := time.Since(probeStart) / probeIterations

	fmt.Printf("%5d props: step %10v | probe %8v (%4d/%d hits)\n",
		count, stepTime.Round(time.Microsecond), probeTime.Round(100*time.Nanosecond),
		hits, probeIterations)
	return nil
}
