package graphical_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pictlock/go-mfa-server/graphical"
)

var (
	squareBounds = graphical.Bounds{Width: 300, Height: 300}

	// The reference template: four corners of a square.
	template = [4]graphical.Point{{X: 40, Y: 40}, {X: 80, Y: 40}, {X: 80, Y: 80}, {X: 40, Y: 80}}
)

func TestMatchesWithinTolerance(t *testing.T) {
	submitted := [4]graphical.Point{{X: 41, Y: 39}, {X: 79, Y: 41}, {X: 81, Y: 79}, {X: 39, Y: 81}}
	require.True(t, graphical.Matches(template, submitted, squareBounds, squareBounds))
}

func TestMatchesExactPoints(t *testing.T) {
	require.True(t, graphical.Matches(template, template, squareBounds, squareBounds))
}

func TestRejectsPermutedOrder(t *testing.T) {
	// The same four points with the first two swapped. Order is part of the
	// secret, so this must fail even though the set is identical.
	submitted := [4]graphical.Point{{X: 79, Y: 41}, {X: 41, Y: 39}, {X: 81, Y: 79}, {X: 39, Y: 81}}
	require.False(t, graphical.Matches(template, submitted, squareBounds, squareBounds))
}

func TestRejectsSingleOutOfTolerancePoint(t *testing.T) {
	// Three points dead on, one 16px off: 16/300 > 0.05.
	submitted := template
	submitted[2].X += 16
	require.False(t, graphical.Matches(template, submitted, squareBounds, squareBounds))
}

func TestBoundaryExactlyEpsilonMatches(t *testing.T) {
	// 15px on a 300px axis is a normalized distance of exactly 0.05. The
	// boundary is inclusive.
	submitted := template
	submitted[0].X += 15
	require.True(t, graphical.Matches(template, submitted, squareBounds, squareBounds))
}

func TestMatchesAcrossResolutions(t *testing.T) {
	// Same gesture captured at 300x300, replayed on a 600x600 rendering.
	doubled := graphical.Bounds{Width: 600, Height: 600}
	submitted := [4]graphical.Point{}
	for i, p := range template {
		submitted[i] = graphical.Point{X: p.X * 2, Y: p.Y * 2}
	}
	require.True(t, graphical.Matches(template, submitted, squareBounds, doubled))

	// And with a little jitter at the higher resolution.
	submitted[1].X += 5
	submitted[3].Y -= 4
	require.True(t, graphical.Matches(template, submitted, squareBounds, doubled))
}

func TestRejectsNonSquareBoundsMismatch(t *testing.T) {
	// Normalization is per axis: the same pixel coordinates on a stretched
	// rendering land elsewhere in the unit square.
	stretched := graphical.Bounds{Width: 600, Height: 300}
	require.False(t, graphical.Matches(template, template, squareBounds, stretched))
}

func TestRejectsZeroBounds(t *testing.T) {
	require.False(t, graphical.Matches(template, template, squareBounds, graphical.Bounds{}))
	require.False(t, graphical.Matches(template, template, graphical.Bounds{}, squareBounds))
}

func TestPointsFromSlice(t *testing.T) {
	points := []graphical.Point{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 5, Y: 6}, {X: 7, Y: 8}}
	fixed, err := graphical.PointsFromSlice(points)
	require.NoError(t, err)
	require.Equal(t, graphical.Point{X: 7, Y: 8}, fixed[3])

	_, err = graphical.PointsFromSlice(points[:3])
	require.Error(t, err)

	_, err = graphical.PointsFromSlice(append(points, graphical.Point{X: 9, Y: 9}))
	require.Error(t, err)

	_, err = graphical.PointsFromSlice(nil)
	require.Error(t, err)
}

func TestBoundsContains(t *testing.T) {
	b := graphical.Bounds{Width: 100, Height: 50}
	require.True(t, b.Contains(graphical.Point{X: 0, Y: 0}))
	require.True(t, b.Contains(graphical.Point{X: 100, Y: 50}))
	require.False(t, b.Contains(graphical.Point{X: 101, Y: 10}))
	require.False(t, b.Contains(graphical.Point{X: -1, Y: 10}))
}
