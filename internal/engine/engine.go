// Package engine synthesizes backend write requests from caller arguments,
// template defaults, and operation constants, validates them, and posts
// them. Every operation is described by a compile-time Descriptor; the
// synthesis loop is shared by all of them.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mifos-community/mifosx-mcp/internal/codes"
	"github.com/mifos-community/mifosx-mcp/internal/config"
	"github.com/mifos-community/mifosx-mcp/internal/dates"
	"github.com/mifos-community/mifosx-mcp/internal/template"
)

// Templates fetches template documents. Implemented by template.Fetcher.
type Templates interface {
	SavingsAccount(ctx context.Context, clientID, productID int64) (*template.Document, error)
	SavingsTransaction(ctx context.Context, accountID int64) (*template.Document, error)
	LoanProduct(ctx context.Context) (*template.Document, error)
	LoanApplication(ctx context.Context, clientID, productID int64, loanType string) (*template.Document, error)
	LoanApproval(ctx context.Context, accountID int64) (*template.Document, error)
	LoanTransaction(ctx context.Context, accountID int64, command string) (*template.Document, error)
}

// CodeSource fetches backend code groups and currencies. Implemented by
// fineract.Client.
type CodeSource interface {
	CodeValues(ctx context.Context, codeID int64, name string) (codes.Group, error)
	Currencies(ctx context.Context) ([]codes.Currency, error)
}

// Poster sends the serialized request. Implemented by fineract.Client.
type Poster interface {
	Post(ctx context.Context, path string, query url.Values, body []byte) (json.RawMessage, error)
}

// Engine executes operations. It holds no per-invocation state; concurrent
// Execute calls are safe.
type Engine struct {
	templates Templates
	source    CodeSource
	poster    Poster
	codes     config.CodesConfig
	clock     dates.Clock
	logger    *logrus.Logger
}

func New(templates Templates, source CodeSource, poster Poster, codesCfg config.CodesConfig, clock dates.Clock, logger *logrus.Logger) *Engine {
	return &Engine{
		templates: templates,
		source:    source,
		poster:    poster,
		codes:     codesCfg,
		clock:     clock,
		logger:    logger,
	}
}

// Execute synthesizes, validates, serializes, and posts one operation. The
// backend's response document is returned unchanged.
func (e *Engine) Execute(ctx context.Context, op Operation, args Args) (json.RawMessage, error) {
	desc, ok := Lookup(op)
	if !ok {
		return nil, fmt.Errorf("unknown operation %q", op)
	}

	log := e.logger.WithFields(logrus.Fields{
		"operation":  op,
		"request_id": uuid.NewString(),
	})

	// Today is read once per invocation so every defaulted date agrees.
	today := e.clock.Today()

	path, query, err := e.route(desc, args)
	if err != nil {
		return nil, err
	}

	doc, err := e.fetchTemplate(ctx, desc, args)
	if err != nil {
		log.WithError(err).Warn("Template fetch failed")
		return nil, err
	}

	resolved, err := e.synthesize(ctx, desc, args, doc, today)
	if err != nil {
		return nil, err
	}

	if err := e.validate(desc, resolved, doc, today); err != nil {
		log.WithError(err).Info("Request rejected")
		return nil, err
	}

	body, err := serialize(desc, resolved)
	if err != nil {
		return nil, err
	}

	if f := desc.Route.QueryFromField; f != "" {
		query.Set(desc.Route.QueryName, fmt.Sprint(resolved[f]))
	}

	log.WithField("path", path).Debug("Posting resolved request")
	return e.poster.Post(ctx, path, query, body)
}

// route builds the target path and the command query before any network
// traffic, so malformed routing arguments fail fast.
func (e *Engine) route(desc *Descriptor, args Args) (string, url.Values, error) {
	path := desc.Route.Path
	if desc.Route.PathArg != "" {
		id, ok := args.Int(desc.Route.PathArg)
		if !ok {
			return "", nil, &ValidationError{
				Op: desc.Op, Rule: "required-argument",
				Detail: fmt.Sprintf("argument %q is required", desc.Route.PathArg),
			}
		}
		path = fmt.Sprintf(path, id)
	}

	query := url.Values{}
	command := desc.Route.Command
	if desc.Route.CommandArg != "" {
		raw, ok := args.Text(desc.Route.CommandArg)
		if !ok || raw == "" {
			return "", nil, &ValidationError{
				Op: desc.Op, Rule: "required-argument",
				Detail: fmt.Sprintf("argument %q is required", desc.Route.CommandArg),
			}
		}
		command = strings.ToLower(raw)
		allowed := false
		for _, c := range desc.Route.CommandAllowed {
			if command == c {
				allowed = true
				break
			}
		}
		if !allowed {
			return "", nil, &ValidationError{
				Op: desc.Op, Rule: "command",
				Detail: fmt.Sprintf("%q is not one of %s", raw, strings.Join(desc.Route.CommandAllowed, ", ")),
			}
		}
	}
	if command != "" {
		query.Set("command", command)
	}

	return path, query, nil
}

func (e *Engine) fetchTemplate(ctx context.Context, desc *Descriptor, args Args) (*template.Document, error) {
	requireInt := func(name string) (int64, error) {
		v, ok := args.Int(name)
		if !ok {
			return 0, &ValidationError{
				Op: desc.Op, Rule: "required-argument",
				Detail: fmt.Sprintf("argument %q is required", name),
			}
		}
		return v, nil
	}

	switch desc.Template {
	case TemplateNone:
		return nil, nil

	case TemplateSavingsAccount:
		clientID, err := requireInt("clientId")
		if err != nil {
			return nil, err
		}
		productID, err := requireInt("productId")
		if err != nil {
			return nil, err
		}
		return e.templates.SavingsAccount(ctx, clientID, productID)

	case TemplateSavingsTransaction:
		accountID, err := requireInt("accountNumber")
		if err != nil {
			return nil, err
		}
		return e.templates.SavingsTransaction(ctx, accountID)

	case TemplateLoanProduct:
		return e.templates.LoanProduct(ctx)

	case TemplateLoanApplication:
		clientID, err := requireInt("clientId")
		if err != nil {
			return nil, err
		}
		productID, err := requireInt("productId")
		if err != nil {
			return nil, err
		}
		loanType, ok := args.Text("loanType")
		if !ok || loanType == "" {
			return nil, &ValidationError{
				Op: desc.Op, Rule: "required-argument",
				Detail: `argument "loanType" is required`,
			}
		}
		return e.templates.LoanApplication(ctx, clientID, productID, strings.ToLower(loanType))

	case TemplateLoanApproval:
		accountID, err := requireInt("accountNumber")
		if err != nil {
			return nil, err
		}
		return e.templates.LoanApproval(ctx, accountID)

	case TemplateLoanTransaction:
		accountID, err := requireInt("accountNumber")
		if err != nil {
			return nil, err
		}
		return e.templates.LoanTransaction(ctx, accountID, desc.Route.Command)
	}

	return nil, fmt.Errorf("unhandled template kind %d", desc.Template)
}

// synthesize computes every field's value by precedence: caller argument,
// template default, today, operation constant.
func (e *Engine) synthesize(ctx context.Context, desc *Descriptor, args Args, doc *template.Document, today dates.Date) (map[string]interface{}, error) {
	resolved := make(map[string]interface{}, len(desc.Fields))

	for _, f := range desc.Fields {
		if f.Resolve != nil {
			value, present, err := e.resolveCode(ctx, desc, f, args, doc)
			if err != nil {
				return nil, err
			}
			if present {
				resolved[f.Name] = value
			}
			continue
		}

		value, present, err := synthesizeField(f, args, doc, today)
		if err != nil {
			return nil, err
		}
		if present {
			resolved[f.Name] = value
		}
	}

	return resolved, nil
}

func synthesizeField(f FieldSpec, args Args, doc *template.Document, today dates.Date) (interface{}, bool, error) {
	if f.Arg != "" {
		switch f.Role {
		case RoleText:
			if s, ok := args.Text(f.Arg); ok {
				if f.Normalize != nil {
					s = f.Normalize(s)
				}
				return s, true, nil
			}
		case RoleDate:
			// caller dates are constrained to the canonical format
			if s, ok := args.Text(f.Arg); ok && s != "" {
				d, err := dates.ParseCanonical(s)
				if err != nil {
					return nil, false, err
				}
				return d, true, nil
			}
		case RoleNumber:
			if v, ok := args.Number(f.Arg); ok {
				return v, true, nil
			}
		case RoleInt:
			if v, ok := args.Int(f.Arg); ok {
				return v, true, nil
			}
		}
	}

	if f.TemplateKey != "" && doc != nil {
		switch f.Role {
		case RoleDate:
			if d, ok := doc.Date(f.TemplateKey); ok {
				return d, true, nil
			}
		case RoleNumber:
			if v, ok := doc.Number(f.TemplateKey); ok {
				return v, true, nil
			}
		case RoleInt:
			if v, ok := doc.Int(f.TemplateKey); ok {
				return v, true, nil
			}
		case RoleText:
			if s, ok := doc.Text(f.TemplateKey); ok {
				return s, true, nil
			}
		case RoleList:
			if raw, ok := doc.Raw(f.TemplateKey); ok {
				return raw, true, nil
			}
		}
	}

	if f.Today && f.Role == RoleDate {
		return today, true, nil
	}

	if f.Const != nil {
		return f.Const, true, nil
	}

	return nil, false, nil
}

// resolveCode turns a free-text name into a numeric id (or a currency code)
// after precedence resolution has produced the name.
func (e *Engine) resolveCode(ctx context.Context, desc *Descriptor, f FieldSpec, args Args, doc *template.Document) (interface{}, bool, error) {
	name, ok := args.Text(f.Arg)
	if !ok {
		if f.Required {
			return nil, false, &ValidationError{
				Op: desc.Op, Rule: "required-argument",
				Detail: fmt.Sprintf("argument %q is required", f.Arg),
			}
		}
		return nil, false, nil
	}

	ref := f.Resolve

	if ref.Currency {
		options, err := e.source.Currencies(ctx)
		if err != nil {
			return nil, false, err
		}
		code, err := codes.ResolveCurrency(options, name)
		if err != nil {
			return nil, false, &UnresolvedCodeError{Op: desc.Op, Field: f.Name, Group: "currencies", Name: name}
		}
		return code, true, nil
	}

	var group codes.Group
	var err error
	switch {
	case ref.List != "":
		if doc != nil {
			group = doc.OptionList(ref.List)
		} else {
			group = codes.Group{Name: ref.List}
		}
	case ref.Group != "":
		group, err = e.source.CodeValues(ctx, e.groupID(ref.Group), ref.Group)
		if err != nil {
			return nil, false, err
		}
	}

	if ref.DefaultFrom != "" {
		return codes.ResolveOrDefault(group, name, e.defaultID(ref.DefaultFrom)), true, nil
	}

	id, err := codes.Resolve(group, name)
	if err != nil {
		if f.Required {
			return nil, false, &UnresolvedCodeError{Op: desc.Op, Field: f.Name, Group: group.Name, Name: name}
		}
		// optional unmatched codes are omitted rather than sent as null
		return nil, false, nil
	}
	return id, true, nil
}

func (e *Engine) groupID(name string) int64 {
	switch name {
	case "addressType":
		return e.codes.AddressType
	case "stateProvince":
		return e.codes.StateProvince
	case "country":
		return e.codes.Country
	case "relationship":
		return e.codes.Relationship
	case "gender":
		return e.codes.Gender
	case "profession":
		return e.codes.Profession
	case "maritalStatus":
		return e.codes.MaritalStatus
	}
	return 0
}

func (e *Engine) defaultID(name string) int64 {
	switch name {
	case "relationship":
		return e.codes.DefaultRelationshipID
	case "gender":
		return e.codes.DefaultGenderID
	}
	return 0
}

// validate runs the structural checks and the operation's cross-field rules,
// stopping at the first failure.
func (e *Engine) validate(desc *Descriptor, resolved map[string]interface{}, doc *template.Document, today dates.Date) error {
	for _, f := range desc.Fields {
		value, present := resolved[f.Name]

		if f.Required && !present {
			return &ValidationError{
				Op: desc.Op, Rule: "required-field",
				Detail: fmt.Sprintf("no value could be resolved for %q", f.Name),
			}
		}

		if f.Required && f.Role == RoleText {
			if s, _ := value.(string); s == "" {
				return &ValidationError{
					Op: desc.Op, Rule: "non-blank",
					Detail: fmt.Sprintf("%q must not be blank", f.Name),
				}
			}
		}

		if f.Positive && present {
			if n, ok := asNumber(value); ok && n <= 0 {
				return &ValidationError{
					Op: desc.Op, Rule: "positive-amount",
					Detail: fmt.Sprintf("%q must be positive, got %v", f.Name, value),
				}
			}
		}
	}

	rc := &RuleContext{fields: resolved, doc: doc, today: today}
	for _, rule := range desc.Rules {
		if err := rule.Check(rc); err != nil {
			return &ValidationError{Op: desc.Op, Rule: rule.Name, Detail: err.Error()}
		}
	}

	return nil
}

func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// serialize renders the resolved request. Dates are formatted with the
// field's declared layout; map key ordering is canonical, so identical
// resolved requests serialize to identical bytes.
func serialize(desc *Descriptor, resolved map[string]interface{}) ([]byte, error) {
	wire := make(map[string]interface{}, len(resolved))
	for _, f := range desc.Fields {
		value, present := resolved[f.Name]
		if !present {
			continue
		}
		if d, isDate := value.(dates.Date); isDate {
			layout := f.Layout
			if layout == "" {
				layout = dates.CanonicalLayout
			}
			wire[f.Name] = d.Format(layout)
		} else {
			wire[f.Name] = value
		}
	}
	return json.Marshal(wire)
}
