package main

import (
	"fmt"
	"math"

	"unicel/contracts"
)

// The function vocabulary is closed by design: one handler per variant,
// dispatched by name in ExpressionExecutor.call.
type functionHandler func(run *evaluation, args []Quantity) (Quantity, error)

var functionHandlers = map[string]functionHandler{
	"sum":     calculateSum,
	"avg":     calculateAvg,
	"min":     calculateMin,
	"max":     calculateMax,
	"count":   calculateCount,
	"ceiling": makeRounding("ceiling", math.Ceil),
	"floor":   makeRounding("floor", math.Floor),
	"round":   makeRounding("round", math.Round),
}

// normalizeToFirst converts every operand into the first operand's unit.
func normalizeToFirst(run *evaluation, name string, args []Quantity) ([]float64, contracts.Compound, error) {
	if len(args) == 0 {
		return nil, nil, fmt.Errorf("%s() takes at least one argument: %w", name, ExpressionError)
	}

	unit := args[0].Unit
	values := make([]float64, len(args))
	values[0] = args[0].Value
	for index := 1; index < len(args); index++ {
		value, err := run.executor.graph.Convert(args[index].Value, args[index].Unit, unit)
		if err != nil {
			return nil, nil, err
		}
		values[index] = value
	}
	return values, unit, nil
}

var calculateSum = func(run *evaluation, args []Quantity) (Quantity, error) {
	values, unit, err := normalizeToFirst(run, "sum", args)
	if err != nil {
		return Quantity{}, err
	}
	total := 0.0
	for _, value := range values {
		total += value
	}
	return Quantity{Value: total, Unit: unit}, nil
}

var calculateAvg = func(run *evaluation, args []Quantity) (Quantity, error) {
	total, err := calculateSum(run, args)
	if err != nil {
		return Quantity{}, err
	}
	total.Value /= float64(len(args))
	return total, nil
}

var calculateMin = func(run *evaluation, args []Quantity) (Quantity, error) {
	values, unit, err := normalizeToFirst(run, "min", args)
	if err != nil {
		return Quantity{}, err
	}
	minValue := values[0]
	for _, value := range values[1:] {
		if value < minValue {
			minValue = value
		}
	}
	return Quantity{Value: minValue, Unit: unit}, nil
}

var calculateMax = func(run *evaluation, args []Quantity) (Quantity, error) {
	values, unit, err := normalizeToFirst(run, "max", args)
	if err != nil {
		return Quantity{}, err
	}
	maxValue := values[0]
	for _, value := range values[1:] {
		if value > maxValue {
			maxValue = value
		}
	}
	return Quantity{Value: maxValue, Unit: unit}, nil
}

// calculateCount carries the externally supplied row unit; the engine
// never derives it.
var calculateCount = func(run *evaluation, args []Quantity) (Quantity, error) {
	rowUnit, err := run.executor.library.ParseCompound(run.opts.RowUnit)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: float64(len(args)), Unit: rowUnit}, nil
}

// makeRounding builds a ceiling-class handler: the result always keeps
// the first argument's unit, and a united significance is converted into
// it before use.
func makeRounding(name string, rounder func(float64) float64) functionHandler {
	return func(run *evaluation, args []Quantity) (Quantity, error) {
		if len(args) == 0 || len(args) > 2 {
			return Quantity{}, fmt.Errorf("%s() takes a number and an optional significance: %w", name, ExpressionError)
		}

		number := args[0]
		significance := 1.0
		if len(args) == 2 {
			argument := args[1]
			if argument.Unit.IsDimensionless() {
				significance = argument.Value
			} else {
				if !argument.Unit.Vector().Equal(number.Unit.Vector()) {
					return Quantity{}, fmt.Errorf("%s() significance %s vs %s: %w", name, unitText(argument.Unit), unitText(number.Unit), contracts.IncompatibleUnitsError)
				}
				converted, err := run.executor.graph.Convert(argument.Value, argument.Unit, number.Unit)
				if err != nil {
					return Quantity{}, err
				}
				significance = converted
			}
		}

		if significance == 0 {
			return Quantity{}, contracts.DivisionByZeroError
		}

		return Quantity{Value: rounder(number.Value/significance) * significance, Unit: number.Unit}, nil
	}
}
