package opa

import (
	"context"
	"fmt"
	"sort"

	"github.com/open-policy-agent/opa/v1/ast"
	"github.com/open-policy-agent/opa/v1/rego"
	"github.com/sustainamine/sustainamine/internal/estimation"
	"go.uber.org/zap"
)

// FlagsQuery is the rule every site policy contributes to.
const FlagsQuery = "data.sustainamine.compliance.flags"

// Validator evaluates site compliance policies against an estimate.
type Validator struct {
	preparedQuery rego.PreparedEvalQuery
}

// policyInput is the document policies see as input.
type policyInput struct {
	Input  estimation.Input  `json:"input"`
	Result estimation.Result `json:"result"`
}

func NewValidatorFromDir(policiesDir string) (*Validator, error) {
	reader := NewPolicyReader()

	policies, err := reader.ReadPolicies(policiesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read policies: %w", err)
	}

	return NewValidator(policies)
}

func NewValidator(policies map[string]string) (*Validator, error) {
	if len(policies) == 0 {
		return nil, fmt.Errorf("no policies provided for validation")
	}

	validator := &Validator{}

	if err := validator.compilePolicies(policies); err != nil {
		return nil, fmt.Errorf("failed to compile policies: %w", err)
	}

	zap.S().Named("opa").Infof("OPA validator initialized with %d policies", len(policies))
	return validator, nil
}

func (v *Validator) compilePolicies(policies map[string]string) error {
	compiler := ast.NewCompiler()
	modules := make(map[string]*ast.Module)

	for filename, content := range policies {
		module, err := ast.ParseModuleWithOpts(filename, content, ast.ParserOptions{
			RegoVersion: ast.RegoV1,
		})
		if err != nil {
			return fmt.Errorf("failed to parse policy %s: %w", filename, err)
		}
		modules[filename] = module
	}

	compiler.Compile(modules)
	if compiler.Failed() {
		return fmt.Errorf("policy compilation failed: %v", compiler.Errors)
	}

	r := rego.New(
		rego.Query(FlagsQuery),
		rego.Compiler(compiler),
		rego.SetRegoVersion(ast.RegoV1),
	)

	preparedQuery, err := r.PrepareForEval(context.Background())
	if err != nil {
		return fmt.Errorf("failed to prepare rego query: %w", err)
	}

	v.preparedQuery = preparedQuery
	return nil
}

// Flags returns the policy flags raised for the estimate, sorted by topic then message.
func (v *Validator) Flags(ctx context.Context, in estimation.Input, result estimation.Result) ([]estimation.ComplianceFlag, error) {
	resultSet, err := v.preparedQuery.Eval(ctx, rego.EvalInput(policyInput{Input: in, Result: result}))
	if err != nil {
		return nil, fmt.Errorf("policy evaluation failed: %w", err)
	}

	if len(resultSet) == 0 || len(resultSet[0].Expressions) == 0 {
		zap.S().Named("opa").Debug("No policy results returned")
		return []estimation.ComplianceFlag{}, nil
	}

	values, ok := resultSet[0].Expressions[0].Value.([]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected result type from policy evaluation: %T", resultSet[0].Expressions[0].Value)
	}

	flags := make([]estimation.ComplianceFlag, 0, len(values))
	for _, value := range values {
		flag, err := toFlag(value)
		if err != nil {
			return nil, err
		}
		flags = append(flags, flag)
	}

	sort.Slice(flags, func(i, j int) bool {
		if flags[i].Topic != flags[j].Topic {
			return flags[i].Topic < flags[j].Topic
		}
		return flags[i].Message < flags[j].Message
	})

	return flags, nil
}

// toFlag defaults the severity to warning when the policy omits it or sets an unknown value.
func toFlag(value interface{}) (estimation.ComplianceFlag, error) {
	m, ok := value.(map[string]interface{})
	if !ok {
		return estimation.ComplianceFlag{}, fmt.Errorf("unexpected flag data type: got %T, expected object", value)
	}

	topic, _ := m["topic"].(string)
	message, _ := m["message"].(string)
	if topic == "" || message == "" {
		return estimation.ComplianceFlag{}, fmt.Errorf("policy flag requires a topic and a message: %v", m)
	}

	severity := estimation.SeverityWarning
	if s, _ := m["severity"].(string); estimation.Severity(s) == estimation.SeverityInfo {
		severity = estimation.SeverityInfo
	}

	return estimation.ComplianceFlag{
		Topic:    topic,
		Message:  message,
		Severity: severity,
		Source:   estimation.FlagSourcePolicy,
	}, nil
}
