package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/quotecalc/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It creates transforms from string parameters for the CLI.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (RequestTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_frequency", createSetFrequency)
	registry.Register("set_target_age", createSetTargetAge)

	registry.Register("set_premium", createSetPremium)
	registry.Register("set_extra_premium", createSetExtraPremium)
	registry.Register("set_sum_insured", createSetSumInsured)
	registry.Register("set_payment_term", createSetPaymentTerm)

	registry.Register("drop_rider", createDropRider)
	registry.Register("set_rider_amount", createSetRiderAmount)
	registry.Register("set_health_program", createSetHealthProgram)

	registry.Register("remove_waiver", createRemoveWaiver)
	registry.Register("set_waiver_beneficiary", createSetWaiverBeneficiary)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (RequestTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms in sorted order.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"; transforms without
// parameters may drop the colon.
// Example: "drop_rider:insured=binh,rider=hospital_cash"
func (r *TransformRegistry) ParseTransformSpec(spec string) (RequestTransform, error) {
	name, paramsStr, _ := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	paramsStr = strings.TrimSpace(paramsStr)
	if name == "" {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			key, value, ok := strings.Cut(paramPair, "=")
			if !ok {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform

func requireParam(transform string, params map[string]string, key string) (string, error) {
	v, ok := params[key]
	if !ok || v == "" {
		return "", fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	return v, nil
}

func intParam(transform string, params map[string]string, key string) (int, error) {
	raw, err := requireParam(transform, params, key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func amountParam(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	raw, err := requireParam(transform, params, key)
	if err != nil {
		return decimal.Zero, err
	}
	v, err := decimal.NewFromString(strings.ReplaceAll(raw, "_", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func riderParam(transform string, params map[string]string) (domain.RiderKind, error) {
	raw, err := requireParam(transform, params, "rider")
	if err != nil {
		return "", err
	}
	return domain.RiderKind(strings.ToLower(raw)), nil
}

func createSetFrequency(params map[string]string) (RequestTransform, error) {
	raw, err := requireParam("set_frequency", params, "frequency")
	if err != nil {
		return nil, err
	}
	freq, err := domain.ParseFrequency(raw)
	if err != nil {
		return nil, err
	}
	return &SetFrequency{Frequency: freq}, nil
}

func createSetTargetAge(params map[string]string) (RequestTransform, error) {
	age, err := intParam("set_target_age", params, "age")
	if err != nil {
		return nil, err
	}
	return &SetTargetAge{Age: age}, nil
}

func createSetPremium(params map[string]string) (RequestTransform, error) {
	amount, err := amountParam("set_premium", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetPremium{Premium: amount}, nil
}

func createSetExtraPremium(params map[string]string) (RequestTransform, error) {
	amount, err := amountParam("set_extra_premium", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetExtraPremium{Amount: amount}, nil
}

func createSetSumInsured(params map[string]string) (RequestTransform, error) {
	amount, err := amountParam("set_sum_insured", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetSumInsured{Amount: amount}, nil
}

func createSetPaymentTerm(params map[string]string) (RequestTransform, error) {
	years, err := intParam("set_payment_term", params, "years")
	if err != nil {
		return nil, err
	}
	return &SetPaymentTerm{Years: years}, nil
}

func createDropRider(params map[string]string) (RequestTransform, error) {
	rider, err := riderParam("drop_rider", params)
	if err != nil {
		return nil, err
	}
	return &DropRider{Insured: params["insured"], Rider: rider}, nil
}

func createSetRiderAmount(params map[string]string) (RequestTransform, error) {
	rider, err := riderParam("set_rider_amount", params)
	if err != nil {
		return nil, err
	}
	amount, err := amountParam("set_rider_amount", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetRiderAmount{Insured: params["insured"], Rider: rider, Amount: amount}, nil
}

func createSetHealthProgram(params map[string]string) (RequestTransform, error) {
	raw, err := requireParam("set_health_program", params, "program")
	if err != nil {
		return nil, err
	}
	program, err := domain.ParseHealthProgram(raw)
	if err != nil {
		return nil, err
	}
	return &SetHealthProgram{Insured: params["insured"], Program: program}, nil
}

func createRemoveWaiver(params map[string]string) (RequestTransform, error) {
	return &RemoveWaiver{}, nil
}

func createSetWaiverBeneficiary(params map[string]string) (RequestTransform, error) {
	beneficiary, err := requireParam("set_waiver_beneficiary", params, "beneficiary")
	if err != nil {
		return nil, err
	}
	return &SetWaiverBeneficiary{Beneficiary: beneficiary}, nil
}
