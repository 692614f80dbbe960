// Package moviescope is a movie exploration pipeline: load a movie table once,
// filter it, pick a display list, aggregate it and lay it out.
//
// Usage:
//
//	import (
//	    "github.com/spektr-org/moviescope/engine"
//	    "github.com/spektr-org/moviescope/helpers"
//	    "github.com/spektr-org/moviescope/layout"
//	)
//
//	movies := helpers.LoadMovies("movies.csv", logger)
//	spec := engine.FilterSpec{SelectedGenres: []string{"drama"}, ResultCount: 10}
//	list := engine.Recompute(movies, spec, engine.ModeTop)
//	trends := engine.AggregateByTime(engine.Filter(movies, spec), engine.ByDecade)
//	positions := layout.Layout(layout.EntitiesFromMovies(list), layout.Bounds{Width: 1200, Height: 800})
//
// Every stage is pure and local. A failed load yields an empty collection and
// every stage accepts empty input, so callers only ever render "no data".
// The layout.Runner ticks a simulation in the background for animated views;
// engine.Explorer keeps one session's filters and shuffle seed.
package moviescope
