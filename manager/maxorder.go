package manager

import "fmt"

// NameMaxOrder is the registered name of the order-increasing adaptor.
const NameMaxOrder = "AdaptorMaxOrder"

// MaxOrder raises the cluster order of the stack by one. The clusters
// extending (i, ..., j) are the neighbours m of the center i with m > j,
// so every set of atoms appears once per center.
type MaxOrder struct {
	layer
}

// NewMaxOrder stacks the adaptor on lower, which must be at least of
// order 2.
func NewMaxOrder(lower Manager, _ Hypers, optFns ...Option) (*MaxOrder, error) {
	o := applyOptions(optFns)
	if err := requireLower(NameMaxOrder, lower, 2, maxClusterOrder-1); err != nil {
		return nil, reject(o, NameMaxOrder, err)
	}

	mo := &MaxOrder{layer: newLayer(NameMaxOrder, lower, lower.MaxOrder()+1, o)}
	mo.strict = lower.IsStrict()
	mo.centerPair = lower.HasCenterPair()
	lower.Register(mo)
	return mo, nil
}

// maxClusterOrder bounds the order reachable by stacking MaxOrder adaptors.
const maxClusterOrder = 8

// UpdateSelf implements Adaptor.
func (mo *MaxOrder) UpdateSelf(changed bool) error {
	return mo.updateSelf(changed, mo.rebuild)
}

func (mo *MaxOrder) rebuild() error {
	low := mo.lower
	top := low.MaxOrder()

	for k := 1; k <= top; k++ {
		mo.inherit(k)
	}
	for k := 1; k < top; k++ {
		e := &mo.ext[k-1]
		e.reset()
		for i := range mo.indices[k-1].Len() {
			e.tags = append(e.tags, low.ExtensionTags(k, i)...)
			e.counts = append(e.counts, low.ExtensionCount(k, i))
		}
		e.close()
	}

	e := &mo.ext[top-1]
	e.reset()
	var err error
	walk(low, top, func(tags []int) bool {
		center, back := tags[0], tags[len(tags)-1]
		count := 0
		for _, m := range low.ExtensionTags(1, center) {
			if m > back {
				e.tags = append(e.tags, m)
				count++
			}
		}
		e.counts = append(e.counts, count)
		return true
	})
	if got, want := len(e.counts), mo.indices[top-1].Len(); got != want {
		err = fmt.Errorf("%w: %s: visited %d clusters of order %d, expected %d", ErrInconsistent, mo.name, got, top, want)
	}
	e.close()
	mo.own(top + 1).FillSequence(len(e.tags))
	return err
}
