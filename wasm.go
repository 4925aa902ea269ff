//go:build js && wasm

package main

import (
	"fmt"
	"strings"
	"syscall/js"

	"github.com/cottand/flowfacts/scenario"
)

// renderScenario replays the YAML scenario passed as first argument
// and returns the text report, or the reason it could not be replayed
func renderScenario(_ js.Value, args []js.Value) (ret any) {
	defer func() {
		if r := recover(); r != nil {
			ret = "flowfacts panicked: " + fmt.Sprint(r)
		}
	}()
	if len(args) == 0 {
		return "expected a scenario"
	}

	s, err := scenario.Load(strings.NewReader(args[0].String()))
	if err != nil {
		return err.Error()
	}
	report, err := s.Run()
	if err != nil {
		return err.Error()
	}
	out, err := report.Render(scenario.FormatText)
	if err != nil {
		return err.Error()
	}
	return out
}

func main() {
	js.Global().Set("RenderScenario", js.FuncOf(renderScenario))

	// wait indefinitely so that Go does not terminate execution
	// and the function remains available
	<-make(chan struct{})
}
