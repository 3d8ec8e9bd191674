package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/netip"
	"sort"
	"strings"
	"time"

	"github.com/henderiw/intervals/pkg/interval"
	"github.com/henderiw/intervals/pkg/ipinterval"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// engine runs the commands for one element domain.
type engine interface {
	Parse(w io.Writer, args []string) error
	Order(w io.Writer, a, b string) error
	Set(w io.Writer, op string, args []string) error
	Map(w io.Writer, def string, pairs, lookups []string) error
	JSON(w io.Writer, args []string) error
}

var domains = map[string]func(sets map[string]string, log *logrus.Entry) engine{
	"int": func(sets map[string]string, log *logrus.Entry) engine {
		return &algebra[int64, interval.Integers[int64]]{sets: sets, log: log}
	},
	"float": func(sets map[string]string, log *logrus.Entry) engine {
		return &algebra[float64, interval.Floats[float64]]{sets: sets, log: log}
	},
	"string": func(sets map[string]string, log *logrus.Entry) engine {
		return &algebra[string, interval.Strings[string]]{sets: sets, log: log}
	},
	"time": func(sets map[string]string, log *logrus.Entry) engine {
		return &algebra[time.Time, interval.Times]{sets: sets, log: log}
	},
	"ip": func(sets map[string]string, log *logrus.Entry) engine {
		return &algebra[netip.Addr, ipinterval.Addrs]{sets: sets, log: log}
	},
}

func domainNames() []string {
	names := make([]string, 0, len(domains))
	for name := range domains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newEngine(domain string, sets map[string]string, log *logrus.Entry) (engine, error) {
	fn, ok := domains[domain]
	if !ok {
		return nil, errors.Errorf("unknown domain %q, want one of %s", domain, strings.Join(domainNames(), ", "))
	}
	return fn(sets, log.WithField("domain", domain)), nil
}

type algebra[T any, D interval.Domain[T]] struct {
	sets map[string]string
	log  *logrus.Entry
}

// set parses s in set notation, or looks it up when it names a configured
// set as @name.
func (a *algebra[T, D]) set(s string) (*interval.Set[T, D], error) {
	if name, ok := strings.CutPrefix(s, "@"); ok {
		def, ok := a.sets[name]
		if !ok {
			return nil, errors.Errorf("unknown set %q", name)
		}
		a.log.WithFields(logrus.Fields{"name": name, "set": def}).Debug("resolved named set")
		s = def
	}
	return interval.ParseSet[T, D](s)
}

func (a *algebra[T, D]) Parse(w io.Writer, args []string) error {
	for _, arg := range args {
		i, err := interval.Parse[T, D](arg)
		if err != nil {
			return err
		}
		a.log.WithFields(logrus.Fields{"input": arg, "interval": i.String()}).Debug("parsed")
		fmt.Fprintln(w, i)
	}
	return nil
}

func (a *algebra[T, D]) Order(w io.Writer, x, y string) error {
	i, err := interval.Parse[T, D](x)
	if err != nil {
		return err
	}
	j, err := interval.Parse[T, D](y)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, i.Order(j))
	return nil
}

var setArgs = map[string]int{
	"union":        2,
	"intersection": 2,
	"difference":   2,
	"xor":          2,
	"contains":     2,
	"inverse":      1,
	"envelope":     1,
}

func (a *algebra[T, D]) Set(w io.Writer, op string, args []string) error {
	n, ok := setArgs[op]
	if !ok {
		return errors.Errorf("unknown set operation %q", op)
	}
	if len(args) != n {
		return errors.Errorf("set %s takes %d arguments, got %d", op, n, len(args))
	}
	s, err := a.set(args[0])
	if err != nil {
		return err
	}

	var other *interval.Set[T, D]
	if n == 2 && op != "contains" {
		if other, err = a.set(args[1]); err != nil {
			return err
		}
	}

	switch op {
	case "union":
		fmt.Fprintln(w, s.Union(other))
	case "intersection":
		fmt.Fprintln(w, s.Intersection(other))
	case "difference":
		fmt.Fprintln(w, s.Difference(other))
	case "xor":
		fmt.Fprintln(w, s.SymmetricDifference(other))
	case "inverse":
		fmt.Fprintln(w, s.Inverse())
	case "envelope":
		fmt.Fprintln(w, s.Envelope())
	case "contains":
		var d D
		v, err := d.Parse(args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(w, s.Contains(v))
	}
	return nil
}

// Map inserts the pairs, written interval=value, in order and prints the
// resulting map followed by one line per lookup.
func (a *algebra[T, D]) Map(w io.Writer, def string, pairs, lookups []string) error {
	m := interval.NewMap[T, D](def)
	for _, pair := range pairs {
		n := strings.LastIndexByte(pair, '=')
		if n < 0 {
			return errors.Errorf("pair %q is not interval=value", pair)
		}
		key, err := interval.Parse[T, D](pair[:n])
		if err != nil {
			return err
		}
		m.Insert(key, pair[n+1:])
		a.log.WithFields(logrus.Fields{"key": key.String(), "value": pair[n+1:], "entries": m.Len()}).Debug("inserted")
	}
	fmt.Fprintln(w, m)

	var d D
	for _, lookup := range lookups {
		k, err := d.Parse(lookup)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s: %s\n", lookup, m.Get(k))
	}
	return nil
}

func (a *algebra[T, D]) JSON(w io.Writer, args []string) error {
	for _, arg := range args {
		s, err := a.set(arg)
		if err != nil {
			return err
		}
		b, err := json.Marshal(s)
		if err != nil {
			return errors.Wrap(err, "json")
		}
		fmt.Fprintln(w, string(b))
	}
	return nil
}
