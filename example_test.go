package gotfm_test

import (
	"fmt"

	gotfm "github.com/albertocavalcante/go-tfm"
)

func ExampleIsCompatible() {
	net461 := gotfm.ParseDescriptor("net461")
	netstandard := gotfm.ParseDescriptor("netstandard2.0")

	fmt.Println(gotfm.IsCompatible(net461, netstandard))
	fmt.Println(gotfm.IsCompatible(netstandard, net461))
	// Output:
	// true
	// false
}

func ExampleGetNearest() {
	project := gotfm.ParseDescriptor("net46")
	candidates := []gotfm.Framework{
		gotfm.ParseDescriptor("net40"),
		gotfm.ParseDescriptor("net45"),
		gotfm.ParseDescriptor("net461"),
	}

	nearest, ok := gotfm.GetNearest(project, candidates)
	fmt.Println(gotfm.ShortFolderName(nearest), ok)
	// Output: net45 true
}

func ExampleParseDescriptor() {
	f := gotfm.ParseDescriptor(".NETFramework,Version=v4.5,Profile=Client")
	fmt.Println(gotfm.ShortFolderName(f))
	fmt.Println(gotfm.ParseDescriptor("portable-win8+net45"))
	// Output:
	// net45-client
	// .NETPortable,Version=v0.0,Profile=Profile7
}

func ExampleSatisfies() {
	ok, err := gotfm.Satisfies("[1.0, 2.0)", "1.5.0")
	fmt.Println(ok, err)
	// Output: true <nil>
}

func ExampleEngine_Graph() {
	engine, err := gotfm.New()
	if err != nil {
		panic(err)
	}
	var fs []gotfm.Framework
	for _, s := range []string{"net45", "net461", "netstandard2.0"} {
		fs = append(fs, engine.ParseFolder(s))
	}

	g := engine.Graph(fs)
	fmt.Println(g.DirectConsumes("net461"))
	// Output: [net45 netstandard2.0]
}
