package autodiff

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

func dotVar(v *Variable, verbose bool) string {
	name := v.Name
	if verbose && v.data != nil {
		if name != "" {
			name += ": "
		}
		name += fmt.Sprintf("%v", v.data.Shape())
	}
	return fmt.Sprintf("%p [label=%q, color=orange, style=filled]\n", v, name)
}

func dotFunc(f Function) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%p [label=%q, color=lightblue, style=filled, shape=box]\n", f, opLabel(f))
	for _, x := range f.Inputs() {
		fmt.Fprintf(&b, "%p -> %p\n", x, f)
	}
	for _, y := range f.Outputs() {
		if y != nil {
			fmt.Fprintf(&b, "%p -> %p\n", f, y)
		}
	}
	return b.String()
}

func opLabel(f Function) string {
	name := fmt.Sprintf("%T", f)
	name = name[strings.LastIndex(name, ".")+1:]
	name = strings.TrimSuffix(name, "Op")
	if name == "" {
		return "?"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// DotGraph renders the computation graph reachable backward from
// output as a Graphviz DOT document.
func DotGraph(output *Variable, verbose bool) string {
	var b strings.Builder
	seen := map[Function]bool{}
	stack := []Function{}

	push := func(f Function) {
		if f != nil && !seen[f] {
			seen[f] = true
			stack = append(stack, f)
		}
	}

	b.WriteString(dotVar(output, verbose))
	push(output.creator)
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		b.WriteString(dotFunc(f))
		for _, x := range f.Inputs() {
			b.WriteString(dotVar(x, verbose))
			push(x.creator)
		}
	}
	return "digraph g {\n" + b.String() + "}"
}

// PlotGraph writes the DOT graph for output and invokes the graphviz
// dot command to render it next to path, whose extension selects the
// image format.
func PlotGraph(output *Variable, path string, verbose bool) error {
	dotPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".dot"
	if err := os.WriteFile(dotPath, []byte(DotGraph(output, verbose)), 0o644); err != nil {
		return errors.Wrap(err, "writing dot file")
	}
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	cmd := exec.Command("dot", dotPath, "-T", format, "-o", path)
	if out, err := cmd.CombinedOutput(); err != nil {
		klog.Warningf("dot command failed: %s", out)
		return errors.Wrap(err, "running dot")
	}
	return nil
}
