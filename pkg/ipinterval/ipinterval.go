// Package ipinterval provides the integral interval domain of IP addresses
// and converts intervals and sets of addresses to and from the netipx range
// and set types.
package ipinterval

import (
	"net/netip"

	"github.com/henderiw/intervals/pkg/interval"
	"github.com/pkg/errors"
	"go4.org/netipx"
)

// Addrs is the integral domain of netip.Addr. Addresses order by family
// first, so every IPv4 address sorts below every IPv6 address.
type Addrs struct{}

func (Addrs) Category() interval.Category { return interval.Integral }

func (Addrs) Compare(a, b netip.Addr) int { return a.Compare(b) }

func (Addrs) Step(a netip.Addr, up bool) (netip.Addr, bool) {
	var next netip.Addr
	if up {
		next = a.Next()
	} else {
		next = a.Prev()
	}
	return next, next.IsValid()
}

func (Addrs) Format(a netip.Addr) string { return a.String() }

func (Addrs) Parse(s string) (netip.Addr, error) {
	a, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, errors.Wrapf(err, "invalid ip address %q", s)
	}
	return a, nil
}

type (
	Interval = interval.Interval[netip.Addr, Addrs]
	Set      = interval.Set[netip.Addr, Addrs]
)

// Parse reads an address interval, e.g. "[10.0.0.1,10.0.0.9)" or
// "10.0.0.0..10.0.0.255".
func Parse(s string) (Interval, error) {
	return interval.Parse[netip.Addr, Addrs](s)
}

// ParseSet reads a set of address intervals, e.g. "{10.0.0.1,>=10.0.1.0}".
func ParseSet(s string) (*Set, error) {
	return interval.ParseSet[netip.Addr, Addrs](s)
}

// FromRange returns the closed interval holding r. An invalid range gives
// the empty interval.
func FromRange(r netipx.IPRange) Interval {
	if !r.IsValid() {
		return interval.Empty[netip.Addr, Addrs]()
	}
	return interval.New[netip.Addr, Addrs](r.From(), r.To(), interval.BoundClosed, interval.BoundClosed)
}

// FromPrefix returns the interval of all addresses in p.
func FromPrefix(p netip.Prefix) Interval {
	return FromRange(netipx.RangeOfPrefix(p.Masked()))
}

// ToRange returns the range holding the members of i. An unbounded side is
// clamped to the first or last address of the family of the other side;
// the universe and intervals spanning both families have no range.
func ToRange(i Interval) (netipx.IPRange, error) {
	switch {
	case i.IsEmpty():
		return netipx.IPRange{}, errors.New("empty interval has no ip range")
	case i.IsUniverse():
		return netipx.IPRange{}, errors.New("unbounded interval has no ip range")
	}
	from, to := i.Min(), i.Max()
	if i.Left() == interval.BoundUnbound {
		from = firstAddr(to)
	}
	if i.Right() == interval.BoundUnbound {
		to = lastAddr(from)
	}
	if !from.IsValid() || !to.IsValid() {
		return netipx.IPRange{}, errors.Errorf("interval %s has no ip range", i)
	}
	r := netipx.IPRangeFrom(from, to)
	if !r.IsValid() {
		return netipx.IPRange{}, errors.Errorf("interval %s spans address families", i)
	}
	return r, nil
}

func firstAddr(a netip.Addr) netip.Addr {
	switch {
	case a.Is4():
		return netip.IPv4Unspecified()
	case a.Is6():
		return netip.IPv6Unspecified()
	}
	return netip.Addr{}
}

func lastAddr(a netip.Addr) netip.Addr {
	switch {
	case a.Is4():
		return netip.AddrFrom4([4]byte{0xff, 0xff, 0xff, 0xff})
	case a.Is6():
		var b [16]byte
		for n := range b {
			b[n] = 0xff
		}
		return netip.AddrFrom16(b)
	}
	return netip.Addr{}
}

// ToIPSet converts s into a netipx.IPSet.
func ToIPSet(s *Set) (*netipx.IPSet, error) {
	var b netipx.IPSetBuilder
	for i := range s.All() {
		r, err := ToRange(i)
		if err != nil {
			return nil, errors.Wrap(err, "ip set")
		}
		b.AddRange(r)
	}
	return b.IPSet()
}

// FromIPSet returns the address intervals of ipset.
func FromIPSet(ipset *netipx.IPSet) *Set {
	s := interval.NewSet[netip.Addr, Addrs]()
	for _, r := range ipset.Ranges() {
		s.Insert(FromRange(r))
	}
	return s
}

// Prefixes returns the smallest list of prefixes covering exactly the
// members of s.
func Prefixes(s *Set) ([]netip.Prefix, error) {
	var prefixes []netip.Prefix
	for i := range s.All() {
		r, err := ToRange(i)
		if err != nil {
			return nil, err
		}
		prefixes = append(prefixes, r.Prefixes()...)
	}
	return prefixes, nil
}
