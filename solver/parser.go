package solver

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// readInt reads an int from r.
// 'b' is the last read byte. It can be a space, a '-' or a digit.
// The int can be negated.
// All spaces before the int value are ignored.
// Can return EOF.
func readInt(b *byte, r *bufio.Reader) (res int, err error) {
	for err == nil && isSpace(*b) {
		*b, err = r.ReadByte()
	}
	if err == io.EOF {
		return res, io.EOF
	}
	if err != nil {
		return res, errors.Wrap(err, "could not read digit")
	}
	neg := 1
	if *b == '-' {
		neg = -1
		*b, err = r.ReadByte()
		if err != nil {
			return 0, errors.Wrap(err, "cannot read int")
		}
	}
	for err == nil {
		if *b < '0' || *b > '9' {
			return 0, errors.Errorf("cannot read int: %q is not a digit", *b)
		}
		res = 10*res + int(*b-'0')
		*b, err = r.ReadByte()
		if isSpace(*b) {
			break
		}
	}
	res *= neg
	return res, err
}

func parseHeader(r *bufio.Reader) (nbVars, nbClauses int, err error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return 0, 0, errors.Wrap(err, "cannot read header")
	}
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return 0, 0, errors.Errorf("invalid syntax %q in header", line)
	}
	nbVars, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, errors.Errorf("nbvars not an int : %q", fields[1])
	}
	nbClauses, err = strconv.Atoi(fields[2])
	if err != nil {
		return 0, 0, errors.Errorf("nbClauses not an int : %q", fields[2])
	}
	return nbVars, nbClauses, nil
}

// ParseCNF parses a DIMACS CNF stream and returns the corresponding Problem.
func ParseCNF(f io.Reader) (*Problem, error) {
	r := bufio.NewReader(f)
	var pb Problem
	b, err := r.ReadByte()
	for err == nil {
		if b == 'c' { // Ignore comment
			b, err = r.ReadByte()
			for err == nil && b != '\n' {
				b, err = r.ReadByte()
			}
		} else if b == 'p' { // Parse header
			var nbClauses int
			pb.NbVars, nbClauses, err = parseHeader(r)
			if err != nil {
				return nil, errors.Wrap(err, "cannot parse CNF header")
			}
			pb.Clauses = make([][]Lit, 0, nbClauses)
		} else {
			lits := make([]Lit, 0, 3) // Make room for some lits to improve performance
			for {
				val, err := readInt(&b, r)
				if err == io.EOF {
					if len(lits) != 0 { // This is not a trailing space at the end...
						return nil, errors.New("unfinished clause while EOF found")
					}
					break // When there are only several useless spaces at the end of the file, that is ok
				}
				if err != nil {
					return nil, errors.Wrap(err, "cannot parse clause")
				}
				if val == 0 {
					if len(lits) == 0 {
						return nil, errors.New("empty clause in input")
					}
					pb.Clauses = append(pb.Clauses, lits)
					break
				}
				if val > pb.NbVars || -val > pb.NbVars {
					return nil, errors.Errorf("invalid literal %d for problem with %d vars only", val, pb.NbVars)
				}
				lits = append(lits, IntToLit(val))
			}
		}
		b, err = r.ReadByte()
	}
	if err != io.EOF {
		return nil, err
	}
	return &pb, nil
}
