package instance

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"insertion-route-service/internal/adapters/distance"
	"insertion-route-service/internal/domain"
)

// Customer rows start at this line index in the Solomon text format.
const customerRowOffset = 9

// ParseSolomon reads a Solomon-format VRPTW instance:
//
//	C106
//
//	VEHICLE
//	NUMBER     CAPACITY
//	  25         200
//
//	CUSTOMER
//	CUST NO.  XCOORD.   YCOORD.    DEMAND   READY TIME  DUE DATE   SERVICE   TIME
//
//	    0      40         50          0          0       1236          0
//
// The distance matrix is generated from the coordinates.
func ParseSolomon(r io.Reader, name string) (*domain.Instance, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	in := &domain.Instance{Name: name}
	headerNext := false

	for i := 0; sc.Scan(); i++ {
		line := strings.TrimSpace(strings.TrimRight(sc.Text(), "\r"))
		if line == "" {
			continue
		}

		if i < customerRowOffset {
			if headerNext {
				if err := parseFleetLine(line, in); err != nil {
					return nil, fmt.Errorf("parse solomon %q: line %d: %w", name, i+1, err)
				}
				headerNext = false
				continue
			}
			upper := strings.ToUpper(line)
			if strings.HasPrefix(upper, "NUMBER") && strings.Contains(upper, "CAPACITY") {
				headerNext = true
			}
			if in.Name == "" && i == 0 {
				in.Name = line
			}
			continue
		}

		c, err := parseCustomerLine(line)
		if err != nil {
			return nil, fmt.Errorf("parse solomon %q: line %d: %w", name, i+1, err)
		}
		if c.ID != len(in.Customers) {
			return nil, fmt.Errorf(
				"parse solomon %q: line %d: %w: customer %d out of sequence (want %d)",
				name, i+1, domain.ErrInvalidInstance, c.ID, len(in.Customers),
			)
		}
		in.Customers = append(in.Customers, c)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("parse solomon %q: read: %w", name, err)
	}

	if len(in.Customers) == 0 {
		return nil, fmt.Errorf("parse solomon %q: %w: no customer rows", name, domain.ErrInvalidInstance)
	}

	in.Distances = distance.EuclideanMatrix(in.Customers)
	return in, nil
}

// LoadSolomonFile parses an instance file; the instance is named after the
// file without its extension.
func LoadSolomonFile(path string) (*domain.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load solomon file: %w", err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseSolomon(f, name)
}

func parseFleetLine(line string, in *domain.Instance) error {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return fmt.Errorf("%w: fleet line needs NUMBER and CAPACITY, got %q", domain.ErrInvalidInstance, line)
	}

	number, err := strconv.Atoi(fields[0])
	if err != nil {
		return fmt.Errorf("%w: vehicle number %q: %v", domain.ErrInvalidInstance, fields[0], err)
	}
	capacity, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return fmt.Errorf("%w: vehicle capacity %q: %v", domain.ErrInvalidInstance, fields[1], err)
	}

	in.VehicleNumber = number
	in.VehicleCapacity = capacity
	return nil
}

func parseCustomerLine(line string) (domain.Customer, error) {
	fields := strings.Fields(line)
	if len(fields) < 7 {
		return domain.Customer{}, fmt.Errorf("%w: customer row needs 7 columns, got %d", domain.ErrInvalidInstance, len(fields))
	}

	vals := make([]float64, 7)
	for k := range vals {
		v, err := strconv.ParseFloat(fields[k], 64)
		if err != nil {
			return domain.Customer{}, fmt.Errorf("%w: column %d %q: %v", domain.ErrInvalidInstance, k+1, fields[k], err)
		}
		vals[k] = v
	}

	return domain.Customer{
		ID:            int(vals[0]),
		X:             vals[1],
		Y:             vals[2],
		Demand:        vals[3],
		ReadyTime:     vals[4],
		Due:           vals[5],
		AvailableTime: vals[5] - vals[4],
		ServiceTime:   vals[6],
	}, nil
}
