package dlf

// Plotter visualizes a design outcome. Implementations are purely
// observational: the designer hands over the final filter and the
// full search result once per run and ignores anything they do.
type Plotter interface {
	PlotResult(f *Filter, res *Result, objective Objective)
}

// PlotterFunc adapts a function to the Plotter interface.
type PlotterFunc func(f *Filter, res *Result, objective Objective)

// PlotResult implements Plotter.
func (fn PlotterFunc) PlotResult(f *Filter, res *Result, objective Objective) {
	fn(f, res, objective)
}
