package region

import "testing"

type benchCell struct {
	n    int
	next Node[benchCell]
}

func (c *benchCell) ProjectRegion(ref ProxyRef) {
	c.next.Bind(ref)
}

func BenchmarkMakeRoot(b *testing.B) {
	for i := 0; i < b.N; i++ {
		r, err := MakeRootValue(benchCell{n: i})
		if err != nil {
			b.Fatal(err)
		}
		r.Close()
	}
}

func BenchmarkChainDestroy(b *testing.B) {
	const length = 100
	for i := 0; i < b.N; i++ {
		root, err := MakeRootValue(benchCell{n: 0})
		if err != nil {
			b.Fatal(err)
		}
		prev := root.AsNode()
		for j := 1; j < length; j++ {
			n, err := MakeNodeValue(prev, benchCell{n: j})
			if err != nil {
				b.Fatal(err)
			}
			prev.Get().next.Assign(n)
			prev = n
		}
		if err := root.Close(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkChurn(b *testing.B) {
	for i := 0; i < b.N; i++ {
		root, err := MakeRootValue(benchCell{n: i})
		if err != nil {
			b.Fatal(err)
		}
		root.Get().next.Assign(root.AsNode())
		if err := root.Close(); err != nil {
			b.Fatal(err)
		}
	}
}
