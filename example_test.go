package winemix_test

import (
	"context"
	"fmt"

	"github.com/Victor-Leroy/winemix"
	"github.com/Victor-Leroy/winemix/pkg/domain"
)

func ExampleEngine_Next() {
	eng, _ := winemix.New(domain.NewConfiguration(4))
	root, _ := eng.Start(map[int]*domain.Mix{
		0: domain.NewMix(0.25, 0),
		3: domain.NewMix(0, 0.25),
	})

	for _, step := range eng.Next(root) {
		fmt.Println(step.Transfer)
	}
	// Output:
	// {0} -> {1}
	// {3} -> {2}
}

func ExampleEngine_Explore() {
	eng, _ := winemix.New(domain.NewConfiguration(3))
	root, _ := eng.Start(map[int]*domain.Mix{0: domain.NewMix(1)})

	res, _, _ := eng.Explore(context.Background(), root)
	fmt.Println("visited:", res.Visited)
	fmt.Println("best:", res.BestMix())
	// Output:
	// visited: 3
	// best: (1)
}
