package angular_test

import (
	"fmt"

	"github.com/atomkit/recoupling/angular"
)

// Couple two spin-1 momenta through a symmetric 6j block. All arguments
// are doubled, so 2 stands for j = 1.
func ExampleW6j() {
	v := angular.W6j(2, 2, 2, 2, 2, 2)
	fmt.Printf("{1 1 1; 1 1 1} = %.6f\n", v)
	// Output:
	// {1 1 1; 1 1 1} = 0.166667
}

// Project the spin singlet of two spin-1/2 particles.
func ExampleClebschGordan() {
	c := angular.ClebschGordan(1, 1, 1, -1, 0, 0)
	fmt.Printf("<1/2 1/2, 1/2 -1/2 | 0 0> = %.4f\n", c)
	// Output:
	// <1/2 1/2, 1/2 -1/2 | 0 0> = 0.7071
}
