package stn

import (
	"github.com/katalvlaran/stncore/domain"
	"github.com/katalvlaran/stncore/lit"
)

// boundValueOf reads vb's current value out of store, in the raw
// BoundValue representation shared by upper and lower bounds.
func boundValueOf(store *domain.Domains, vb lit.VarBound) lit.BoundValue {
	dom := store.DomainOf(vb.Variable())
	if vb.IsUB() {
		return lit.UBValue(dom.Ub)
	}
	return lit.LBValue(dom.Lb)
}

// setBound tightens vb to val, dispatching to the matching domain.Domains
// setter depending on which side vb names.
func setBound(store *domain.Domains, vb lit.VarBound, val lit.BoundValue, cause domain.Cause) (tightened bool, err error) {
	if vb.IsUB() {
		return store.SetUb(vb.Variable(), val.AsUB(), cause)
	}
	return store.SetLb(vb.Variable(), val.AsLB(), cause)
}
