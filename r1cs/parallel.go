package r1cs

import "golang.org/x/sync/errgroup"

// BuildConcurrently constructs n independent Systems and runs build
// against each concurrently via an errgroup. It exists to exercise
// spec §5's explicit allowance that "a process may construct multiple
// independent constraint systems in parallel" — each goroutine owns
// exactly one exclusive *System; no arena state is ever shared across
// goroutines, so this does not relax the single-threaded-per-System
// rule, it only runs several single-threaded arenas side by side.
//
// On the first build error, BuildConcurrently returns that error; the
// systems slice is only valid when err is nil.
func BuildConcurrently(n int, newSystem func(i int) *System, build func(i int, sys *System) error) ([]*System, error) {
	systems := make([]*System, n)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		systems[i] = newSystem(i)
		g.Go(func() error {
			return build(i, systems[i])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return systems, nil
}
