/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: defuzz.go
Description: Defuzzification strategies. Each strategy is a pure function over a sampled
output domain and the aggregated membership values at those samples, returning one crisp value.
*/

package defuzz

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMethod is returned for an unrecognised defuzzification name
var ErrUnknownMethod = errors.New("unknown defuzzification method")

// Method tags a defuzzification strategy
type Method string

const (
	// COG is the center of gravity (centroid)
	COG Method = "COG"
	// MOM is the mean of the samples holding the maximum degree
	MOM Method = "MOM"
	// BOA is the bisector of area
	BOA Method = "BOA"
)

// Strategy maps a sampled fuzzy set to a crisp value. ok is false when the set has no mass,
// leaving the fallback to the caller.
type Strategy func(xs, mu []float64) (value float64, ok bool)

// Parse resolves a method name. "centroid" is accepted for COG and the empty string selects COG.
func Parse(name string) (Method, error) {
	switch m := strings.ToUpper(strings.TrimSpace(name)); m {
	case "", "CENTROID", string(COG):
		return COG, nil
	case string(MOM):
		return MOM, nil
	case string(BOA):
		return BOA, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// Strategy returns the function implementing the method
func (m Method) Strategy() Strategy {
	switch m {
	case MOM:
		return MeanOfMaximum
	case BOA:
		return Bisector
	default:
		return Centroid
	}
}

// Centroid computes sum(x*mu) / sum(mu)
func Centroid(xs, mu []float64) (float64, bool) {
	var num, den float64
	for i, x := range xs {
		num += x * mu[i]
		den += mu[i]
	}
	if den == 0 {
		return 0, false
	}
	return num / den, true
}

// MeanOfMaximum averages the samples where mu reaches its maximum
func MeanOfMaximum(xs, mu []float64) (float64, bool) {
	var (
		best  float64
		sum   float64
		count int
	)
	for i, x := range xs {
		switch {
		case mu[i] > best:
			best, sum, count = mu[i], x, 1
		case mu[i] == best && best > 0:
			sum += x
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

// Bisector returns the first sample at which the running mass reaches half of the total
func Bisector(xs, mu []float64) (float64, bool) {
	var total float64
	for _, m := range mu {
		total += m
	}
	if total == 0 {
		return 0, false
	}

	var running float64
	for i, x := range xs {
		running += mu[i]
		if running >= total/2 {
			return x, true
		}
	}
	return xs[len(xs)-1], true
}
