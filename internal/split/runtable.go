package split

import "fmt"

// runNumberHeader is the header label of the run number column.
const runNumberHeader = "Experiment number"

// BuildRunTable returns the run table rows for a plan: a header with the
// run number column and one column per axis variable, then one row per run.
func BuildRunTable(p *Plan) [][]string {
	header := []string{runNumberHeader}
	for _, axis := range p.Axes {
		header = append(header, axis.Variable)
	}

	rows := [][]string{header}
	for _, run := range p.Runs() {
		row := make([]string, 0, len(header))
		row = append(row, fmt.Sprintf("%d", run.Number))
		for _, a := range run.Assignments {
			row = append(row, a.Value)
		}
		rows = append(rows, row)
	}
	return rows
}
