/*
Package winemix models blending wine across a fixed bank of tanks.

Each tank holds nothing or a Mix, a composition vector with one amount per
source wine. A transfer empties occupied tanks into an equal number of empty
tanks; applying it yields a new immutable State one step deeper. The engine
enumerates every legal transfer from a state, gates and applies them, and
hands the successors to a search driver.

# Concept

The core lives in pkg/domain and is pure. This package wraps it with an
exploration driver, logging and configuration so it can be embedded in a CLI,
an HTTP server or a test.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/Victor-Leroy/winemix"
		"github.com/Victor-Leroy/winemix/pkg/domain"
	)

	func main() {
		eng, err := winemix.New(domain.NewConfiguration(4), winemix.WithLimits(3, 0))
		if err != nil {
			log.Fatal(err)
		}

		root, err := eng.Start(map[int]*domain.Mix{
			0: domain.NewMix(0.25, 0),
			3: domain.NewMix(0, 0.25),
		})
		if err != nil {
			log.Fatal(err)
		}

		for _, step := range eng.Next(root) {
			fmt.Println(step.Transfer, step.State)
		}

		res, _, err := eng.Explore(context.Background(), root)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println("visited", res.Visited, "best", res.BestMix())
	}

# Policies

Candidate destinations are pruned by an adjacency policy (neighbouring tanks
by default) and multi-tank destinations receive the combined mix according to
a distribution policy (replicate by default). Both are set on
domain.Configuration.
*/
package winemix
