package cnf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseDimacs reads a formula in the DIMACS CNF format. Comment lines may
// appear anywhere and the problem line is optional; when present it is
// checked against the clauses that follow.
func ParseDimacs(r io.Reader) (*Instance, error) {
	var problem struct {
		vars    int
		clauses int
		seen    bool
	}
	var clauses []*Clause
	var positive, negative []Var
	flush := func() {
		clauses = append(clauses, NewClause(positive, negative))
		positive, negative = nil, nil
	}
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := s.Text()
		if len(line) == 0 || line[0] == 'c' {
			continue
		}
		// Some benchmark sets attach a trailer after a lone % line.
		if strings.TrimSpace(line) == "%" {
			break
		}
		if line[0] == 'p' {
			if problem.seen {
				return nil, errors.New("dimacs: multiple problem lines")
			}
			if len(clauses) > 0 || len(positive)+len(negative) > 0 {
				return nil, errors.New("dimacs: problem line appears after clauses")
			}
			fields := strings.Fields(line)
			if len(fields) != 4 || fields[1] != "cnf" {
				return nil, errors.Errorf("dimacs: malformed problem line %q", line)
			}
			var err error
			problem.vars, err = strconv.Atoi(fields[2])
			if err != nil {
				return nil, errors.Wrap(err, "dimacs: malformed variable count")
			}
			problem.clauses, err = strconv.Atoi(fields[3])
			if err != nil {
				return nil, errors.Wrap(err, "dimacs: malformed clause count")
			}
			if problem.vars < 0 || problem.clauses < 0 {
				return nil, errors.Errorf("dimacs: invalid problem line %q", line)
			}
			problem.seen = true
			continue
		}
		for _, field := range strings.Fields(line) {
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, errors.Wrapf(err, "dimacs: invalid literal %q", field)
			}
			switch {
			case n == 0:
				flush()
			case n > 0:
				positive = append(positive, Var(n))
			default:
				negative = append(negative, Var(-n))
			}
		}
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "dimacs: read")
	}
	if len(positive)+len(negative) > 0 {
		flush()
	}
	if problem.seen {
		if len(clauses) != problem.clauses {
			return nil, errors.Errorf("dimacs: problem line declares %d clauses, got %d", problem.clauses, len(clauses))
		}
		for _, c := range clauses {
			for _, v := range append(c.PositiveVars(), c.NegativeVars()...) {
				if int(v) > problem.vars {
					return nil, errors.Errorf("dimacs: variable %d exceeds declared count %d", v, problem.vars)
				}
			}
		}
	}
	return NewInstance(clauses, nil), nil
}

// WriteDimacs writes the instance's active clauses in DIMACS CNF format.
func WriteDimacs(w io.Writer, in *Instance) error {
	maxVar := uint(0)
	if vars := in.Vars(); vars.Any() {
		// Highest set bit; Len is only an upper bound on the bitset capacity.
		for i, ok := vars.NextSet(0); ok; i, ok = vars.NextSet(i + 1) {
			maxVar = i
		}
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "p cnf %d %d\n", maxVar, len(in.Clauses))
	for _, c := range in.Clauses {
		for _, v := range c.PositiveVars() {
			fmt.Fprintf(bw, "%d ", v)
		}
		for _, v := range c.NegativeVars() {
			fmt.Fprintf(bw, "-%d ", v)
		}
		fmt.Fprintln(bw, "0")
	}
	return errors.Wrap(bw.Flush(), "dimacs: write")
}
