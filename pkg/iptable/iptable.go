package iptable

import (
	"fmt"
	"math/big"
	"net/netip"

	"github.com/henderiw/intervals/pkg/interval"
	"github.com/henderiw/intervals/pkg/ipinterval"
	"github.com/henderiw/intervals/pkg/rangetable"
	"github.com/samber/lo"
	"go4.org/netipx"
	"k8s.io/apimachinery/pkg/labels"
)

// Entry is a claimed address range with its labels.
type Entry = interval.Entry[netip.Addr, ipinterval.Addrs, labels.Set]

type IPTable interface {
	Get(addr string) (labels.Set, error)
	Claim(addr string, d labels.Set) error
	ClaimPrefix(prefix netip.Prefix, d labels.Set) error
	ClaimDynamic(d labels.Set) (netip.Addr, error)
	Release(addr string) error
	ReleasePrefix(prefix netip.Prefix) error
	Update(addr string, d labels.Set) error

	Count() int
	Has(addr string) bool

	IsFree(addr string) bool
	FindFree() (netip.Addr, error)
	Free() *ipinterval.Set

	GetAll() []Entry
	GetByLabel(selector labels.Selector) []Entry
}

func New(from, to netip.Addr, opts ...rangetable.Option) (IPTable, error) {
	ipRange := netipx.IPRangeFrom(from, to)
	if !ipRange.IsValid() {
		return nil, fmt.Errorf("invalid ip range from %s to %s", from, to)
	}
	size := numIPs(from, to)
	if !size.IsInt64() {
		return nil, fmt.Errorf("ip range from %s to %s holds more than %d addresses", from, to, int64(^uint64(0)>>1))
	}
	t, err := rangetable.NewTable(size.Int64(), nil, nil, opts...)
	if err != nil {
		return nil, err
	}
	return &ipTable{
		table:   t,
		ipRange: ipRange,
	}, nil
}

type ipTable struct {
	table   rangetable.Table
	ipRange netipx.IPRange
}

func (r *ipTable) Get(addr string) (labels.Set, error) {
	// Validate IP address
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return nil, err
	}
	return r.table.Get(calculateIndex(claimIP, r.ipRange.From()))
}

func (r *ipTable) Claim(addr string, d labels.Set) error {
	// Validate IP address
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return err
	}
	id := calculateIndex(claimIP, r.ipRange.From())
	if !r.table.IsFree(id) {
		return fmt.Errorf("claim failed ip %s already claimed", addr)
	}
	return r.table.Claim(id, d)
}

// ClaimPrefix claims every address of prefix that lies in the table range.
func (r *ipTable) ClaimPrefix(prefix netip.Prefix, d labels.Set) error {
	i, err := r.indexRange(prefix)
	if err != nil {
		return err
	}
	return r.table.ClaimInterval(i, d)
}

func (r *ipTable) ClaimDynamic(d labels.Set) (netip.Addr, error) {
	id, err := r.table.ClaimDynamic(d)
	if err != nil {
		return netip.Addr{}, err
	}
	return calculateIPFromIndex(r.ipRange.From(), id), nil
}

func (r *ipTable) Release(addr string) error {
	// Validate IP address
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return err
	}
	return r.table.Release(calculateIndex(claimIP, r.ipRange.From()))
}

func (r *ipTable) ReleasePrefix(prefix netip.Prefix) error {
	i, err := r.indexRange(prefix)
	if err != nil {
		return err
	}
	return r.table.ReleaseRange(i.Min(), i.Max()-i.Min()+1)
}

func (r *ipTable) Update(addr string, d labels.Set) error {
	// Validate IP address
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return err
	}
	id := calculateIndex(claimIP, r.ipRange.From())
	if r.table.IsFree(id) {
		return fmt.Errorf("update failed ip %s not claimed", addr)
	}
	return r.table.Update(id, d)
}

func (r *ipTable) Count() int {
	return r.table.Count()
}

func (r *ipTable) Has(addr string) bool {
	// Validate IP address
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return false
	}
	return r.table.Has(calculateIndex(claimIP, r.ipRange.From()))
}

func (r *ipTable) IsFree(addr string) bool {
	// Validate IP address
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return false
	}
	return r.table.IsFree(calculateIndex(claimIP, r.ipRange.From()))
}

func (r *ipTable) FindFree() (netip.Addr, error) {
	id, err := r.table.FindFree()
	if err != nil {
		return netip.Addr{}, err
	}
	return calculateIPFromIndex(r.ipRange.From(), id), nil
}

// Free returns the unclaimed addresses of the table range.
func (r *ipTable) Free() *ipinterval.Set {
	free := interval.NewSet[netip.Addr, ipinterval.Addrs]()
	for i := range r.table.Free().All() {
		free.Insert(r.addrRange(i))
	}
	return free
}

func (r *ipTable) GetAll() []Entry {
	return r.addrEntries(r.table.GetAll())
}

func (r *ipTable) GetByLabel(selector labels.Selector) []Entry {
	return r.addrEntries(r.table.GetByLabel(selector))
}

func (r *ipTable) addrEntries(entries []rangetable.Entry) []Entry {
	return lo.Map(entries, func(e rangetable.Entry, _ int) Entry {
		return Entry{Key: r.addrRange(e.Key), Value: e.Value}
	})
}

// addrRange converts a range of table indices to the addresses they stand
// for.
func (r *ipTable) addrRange(i rangetable.Interval) ipinterval.Interval {
	from := calculateIPFromIndex(r.ipRange.From(), i.Min())
	to := calculateIPFromIndex(r.ipRange.From(), i.Max())
	return ipinterval.FromRange(netipx.IPRangeFrom(from, to))
}

// indexRange converts the part of prefix inside the table range to table
// indices.
func (r *ipTable) indexRange(prefix netip.Prefix) (rangetable.Interval, error) {
	i := ipinterval.FromPrefix(prefix).Intersection(ipinterval.FromRange(r.ipRange))
	if i.IsEmpty() {
		return rangetable.Interval{}, fmt.Errorf("prefix %s does not overlap the range from %s to %s", prefix, r.ipRange.From().String(), r.ipRange.To().String())
	}
	return interval.New[int64, interval.Integers[int64]](
		calculateIndex(i.Min(), r.ipRange.From()),
		calculateIndex(i.Max(), r.ipRange.From()),
		interval.BoundClosed, interval.BoundClosed,
	), nil
}

func (r *ipTable) validateIP(addr string) (netip.Addr, error) {
	// Parse IP address
	claimIP, err := netip.ParseAddr(addr)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("ip address %s is invalid", addr)
	}
	if !r.ipRange.Contains(claimIP) {
		return netip.Addr{}, fmt.Errorf("ip address %s, does not fit in the range from %s to %s", addr, r.ipRange.From().String(), r.ipRange.To().String())
	}
	return claimIP, nil
}

func calculateIndex(ip, start netip.Addr) int64 {
	// Calculate the index in the bitmap
	return new(big.Int).Sub(ipToInt(ip), ipToInt(start)).Int64()
}

func numIPs(startIP, endIP netip.Addr) *big.Int {
	diff := new(big.Int).Sub(ipToInt(endIP), ipToInt(startIP))
	return diff.Add(diff, big.NewInt(1)) // Add 1 to include the start IP
}

func ipToInt(ip netip.Addr) *big.Int {
	bytes := ip.As16()
	return new(big.Int).SetBytes(bytes[:])
}

func calculateIPFromIndex(startIP netip.Addr, id int64) netip.Addr {
	ipInt := new(big.Int).Add(ipToInt(startIP), big.NewInt(id))

	var ip16 [16]byte
	ipInt.FillBytes(ip16[:])

	if startIP.Is4() {
		return netip.AddrFrom4(netip.AddrFrom16(ip16).As4())
	}
	return netip.AddrFrom16(ip16)
}
