// Command checker is the auxiliary Ackermann-function search utility
// spec.md §1 calls out as "included alongside but unrelated to VM
// execution": it searches for the register-7 value that makes the
// challenge binary's confirmation subroutine terminate on the expected
// answer, rather than interpreting any bytecode itself.
//
// Grounded on original_source/src/checker/main.rs: the same five-deep,
// cursor-shaped recurrence (check(a, b, h), a in 0..=4), memoized per
// candidate h, stopping at the h whose result mod 32768 equals 6. The
// Rust original searches h sequentially in a single thread; this rebuild
// fans the outer loop across a worker pool, since each candidate h is an
// independent search sharing no state with any other.
package main

import (
	"fmt"
	"runtime"
	"sync"
)

// maxInt mirrors MAX_INT from the original source: the modulus applied to
// every intermediate and final result, equal to the VM's own 2^15 word
// space.
const maxInt = 32768

// cache memoizes check(a, b, h) for a fixed h. The outer dimension holds
// a in [0, 5) (the recurrence never calls itself with a > 4 starting from
// a = 4); the inner dimension holds b in [0, maxInt). A negative entry
// means "not yet computed", taking the place of Rust's Option<u16>.
type cache [5][]int32

func newCache() cache {
	var c cache
	for a := range c {
		c[a] = make([]int32, maxInt)
		for b := range c[a] {
			c[a][b] = -1
		}
	}
	return c
}

func check(c cache, a, b, h uint16) uint16 {
	if v := c[a][b]; v >= 0 {
		return uint16(v)
	}

	var result uint16
	switch {
	case a == 0:
		result = (b + 1) % maxInt
	case b == 0:
		result = check(c, a-1, h, h)
	default:
		mid := check(c, a, b-1, h)
		result = check(c, a-1, mid, h)
	}

	c[a][b] = int32(result)
	return result
}

// Result reports the outcome of one candidate h.
type Result struct {
	H      uint16
	Answer uint16
	Match  bool
}

func search(h uint16) Result {
	c := newCache()
	answer := check(c, 4, 1, h) % maxInt
	return Result{H: h, Answer: answer, Match: answer == 6}
}

func main() {
	jobs := make(chan uint16)
	results := make(chan Result)

	workers := runtime.GOMAXPROCS(0)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for h := range jobs {
				results <- search(h)
			}
		}()
	}

	go func() {
		for h := 0; h < maxInt; h++ {
			jobs <- uint16(h)
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for r := range results {
		fmt.Printf("Running for %d, %d\n", r.H, r.Answer)
		if r.Match {
			fmt.Printf("Sol: %d\n", r.H)
			return
		}
	}
}
