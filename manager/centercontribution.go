package manager

// NameCenterContribution is the registered name of the self-pair adaptor.
const NameCenterContribution = "AdaptorCenterContribution"

// CenterContribution prepends the pair (i, i) to the pairs of every center
// i. Ghosts keep their pairs unchanged. Pair numbering starts over at this
// layer.
type CenterContribution struct {
	layer
}

// NewCenterContribution stacks the self-pair adaptor on lower, which must be
// of order 2 and must not already hold self pairs.
func NewCenterContribution(lower Manager, _ Hypers, optFns ...Option) (*CenterContribution, error) {
	o := applyOptions(optFns)
	if err := requireLower(NameCenterContribution, lower, 2, 2); err != nil {
		return nil, reject(o, NameCenterContribution, err)
	}
	if lower.HasCenterPair() {
		err := &ConfigError{Adaptor: NameCenterContribution, Reason: "lower manager already holds center pairs"}
		return nil, reject(o, NameCenterContribution, err)
	}

	cc := &CenterContribution{layer: newLayer(NameCenterContribution, lower, 2, o)}
	cc.strict = lower.IsStrict()
	cc.centerPair = true
	lower.Register(cc)
	return cc, nil
}

// UpdateSelf implements Adaptor.
func (cc *CenterContribution) UpdateSelf(changed bool) error {
	return cc.updateSelf(changed, cc.rebuild)
}

func (cc *CenterContribution) rebuild() error {
	low := cc.lower
	n := low.Size()

	cc.inherit(1)
	e := &cc.ext[0]
	e.reset()
	for tag := range low.SizeWithGhosts() {
		count := low.ExtensionCount(1, tag)
		if tag < n {
			e.tags = append(e.tags, tag)
			count++
		}
		e.tags = append(e.tags, low.ExtensionTags(1, tag)...)
		e.counts = append(e.counts, count)
	}
	e.close()
	cc.own(2).FillSequence(len(e.tags))
	return nil
}
