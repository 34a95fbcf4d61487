package engine

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mifos-community/mifosx-mcp/internal/codes"
	"github.com/mifos-community/mifosx-mcp/internal/config"
	"github.com/mifos-community/mifosx-mcp/internal/dates"
	"github.com/mifos-community/mifosx-mcp/internal/template"
)

type stubTemplates struct {
	doc *template.Document
	err error
}

func (s *stubTemplates) SavingsAccount(ctx context.Context, clientID, productID int64) (*template.Document, error) {
	return s.doc, s.err
}
func (s *stubTemplates) SavingsTransaction(ctx context.Context, accountID int64) (*template.Document, error) {
	return s.doc, s.err
}
func (s *stubTemplates) LoanProduct(ctx context.Context) (*template.Document, error) {
	return s.doc, s.err
}
func (s *stubTemplates) LoanApplication(ctx context.Context, clientID, productID int64, loanType string) (*template.Document, error) {
	return s.doc, s.err
}
func (s *stubTemplates) LoanApproval(ctx context.Context, accountID int64) (*template.Document, error) {
	return s.doc, s.err
}
func (s *stubTemplates) LoanTransaction(ctx context.Context, accountID int64, command string) (*template.Document, error) {
	return s.doc, s.err
}

type stubSource struct {
	groups     map[string]codes.Group
	currencies []codes.Currency
}

func (s *stubSource) CodeValues(ctx context.Context, codeID int64, name string) (codes.Group, error) {
	return s.groups[name], nil
}
func (s *stubSource) Currencies(ctx context.Context) ([]codes.Currency, error) {
	return s.currencies, nil
}

type recordPoster struct {
	called bool
	path   string
	query  url.Values
	body   []byte
}

func (p *recordPoster) Post(ctx context.Context, path string, query url.Values, body []byte) (json.RawMessage, error) {
	p.called = true
	p.path = path
	p.query = query
	p.body = body
	return json.RawMessage(`{"resourceId":1}`), nil
}

func testEngine(tpl Templates, source CodeSource, poster Poster) *Engine {
	if tpl == nil {
		tpl = &stubTemplates{}
	}
	if source == nil {
		source = &stubSource{}
	}
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	clock := dates.FixedClock{Date: dates.Date{Year: 2025, Month: 5, Day: 9}}
	return New(tpl, source, poster, config.DefaultConfig().Codes, clock, logger)
}

func decodeBody(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &m))
	return m
}

func paymentOptionsDoc(kind template.Kind, values map[string]interface{}) *template.Document {
	return &template.Document{
		Kind:   kind,
		Values: values,
		Options: map[string]codes.Group{
			"paymentTypeOptions": {Name: "paymentTypeOptions", Values: []codes.Value{
				{ID: 1, Name: "Cash"},
				{ID: 2, Name: "Money Transfer"},
			}},
		},
	}
}

func TestNewSavingsTransaction_EndToEnd(t *testing.T) {
	doc := paymentOptionsDoc(template.KindSavingsTransaction, map[string]interface{}{
		"date": dates.Date{Year: 2025, Month: 5, Day: 1},
	})
	poster := &recordPoster{}
	eng := testEngine(&stubTemplates{doc: doc}, nil, poster)

	_, err := eng.Execute(context.Background(), NewSavingsTransaction, Args{
		"accountNumber":     float64(3),
		"transaction":       "DEPOSIT",
		"paymentType":       "money transfer",
		"transactionAmount": float64(1000),
	})
	require.NoError(t, err)

	assert.Equal(t, "/savingsaccounts/3/transactions", poster.path)
	assert.Equal(t, "deposit", poster.query.Get("command"))

	body := decodeBody(t, poster.body)
	assert.EqualValues(t, 2, body["paymentTypeId"])
	assert.EqualValues(t, 1000, body["transactionAmount"])
	assert.Equal(t, "01 May 2025", body["transactionDate"])
	assert.Equal(t, "en", body["locale"])
	assert.Equal(t, "dd MMMM yyyy", body["dateFormat"])
	assert.Equal(t, "", body["note"])
}

func TestNewSavingsTransaction_InvalidCommand(t *testing.T) {
	poster := &recordPoster{}
	eng := testEngine(nil, nil, poster)

	_, err := eng.Execute(context.Background(), NewSavingsTransaction, Args{
		"accountNumber":     float64(3),
		"transaction":       "transfer",
		"paymentType":       "Cash",
		"transactionAmount": float64(10),
	})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "command", validation.Rule)
	assert.False(t, poster.called)
}

func TestPrecedence_CallerOverridesTemplate(t *testing.T) {
	doc := paymentOptionsDoc(template.KindSavingsTransaction, map[string]interface{}{
		"date": dates.Date{Year: 2025, Month: 5, Day: 1},
	})
	poster := &recordPoster{}
	eng := testEngine(&stubTemplates{doc: doc}, nil, poster)

	_, err := eng.Execute(context.Background(), NewSavingsTransaction, Args{
		"accountNumber":     float64(3),
		"transaction":       "withdrawal",
		"paymentType":       "Cash",
		"transactionAmount": float64(50),
		"transactionDate":   "07 May 2025",
	})
	require.NoError(t, err)

	body := decodeBody(t, poster.body)
	assert.Equal(t, "07 May 2025", body["transactionDate"])
}

func TestSynthesis_Idempotent(t *testing.T) {
	doc := paymentOptionsDoc(template.KindSavingsTransaction, map[string]interface{}{
		"date": dates.Date{Year: 2025, Month: 5, Day: 1},
	})
	args := Args{
		"accountNumber":     float64(3),
		"transaction":       "deposit",
		"paymentType":       "Cash",
		"transactionAmount": float64(25),
	}

	first := &recordPoster{}
	_, err := testEngine(&stubTemplates{doc: doc}, nil, first).Execute(context.Background(), NewSavingsTransaction, args)
	require.NoError(t, err)

	second := &recordPoster{}
	_, err = testEngine(&stubTemplates{doc: doc}, nil, second).Execute(context.Background(), NewSavingsTransaction, args)
	require.NoError(t, err)

	assert.Equal(t, first.body, second.body)
}

func TestDisburseLoan_UnresolvedPaymentType(t *testing.T) {
	doc := paymentOptionsDoc(template.KindLoanTransaction, map[string]interface{}{
		"date":   dates.Date{Year: 2025, Month: 6, Day: 1},
		"amount": float64(10000),
	})
	poster := &recordPoster{}
	eng := testEngine(&stubTemplates{doc: doc}, nil, poster)

	_, err := eng.Execute(context.Background(), DisburseLoan, Args{
		"accountNumber": float64(12),
		"paymentType":   "Wire",
	})

	var unresolved *UnresolvedCodeError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "paymentTypeOptions", unresolved.Group)
	assert.Equal(t, "Wire", unresolved.Name)
	assert.False(t, poster.called)
}

func TestDisburseLoan_TemplateDefaults(t *testing.T) {
	doc := paymentOptionsDoc(template.KindLoanTransaction, map[string]interface{}{
		"date":   dates.Date{Year: 2025, Month: 6, Day: 1},
		"amount": float64(10000),
	})
	poster := &recordPoster{}
	eng := testEngine(&stubTemplates{doc: doc}, nil, poster)

	_, err := eng.Execute(context.Background(), DisburseLoan, Args{
		"accountNumber": float64(12),
		"paymentType":   "Money Transfer",
	})
	require.NoError(t, err)

	// disbursement posts to the loan itself; only repayments target the
	// transactions sub-resource
	assert.Equal(t, "/loans/12", poster.path)
	assert.Equal(t, "disburse", poster.query.Get("command"))

	body := decodeBody(t, poster.body)
	assert.Equal(t, "01 June 2025", body["actualDisbursementDate"])
	assert.EqualValues(t, 10000, body["transactionAmount"])
	assert.EqualValues(t, 2, body["paymentTypeId"])
	assert.Equal(t, "", body["externalId"])
	assert.Equal(t, "", body["bankNumber"])
}

func TestApproveLoan_RejectsEarlyApprovalDate(t *testing.T) {
	doc := &template.Document{
		Kind: template.KindLoanApproval,
		Values: map[string]interface{}{
			"approvalDate":   dates.Date{Year: 2025, Month: 6, Day: 1},
			"approvalAmount": float64(10000),
		},
		Options: map[string]codes.Group{},
	}
	poster := &recordPoster{}
	eng := testEngine(&stubTemplates{doc: doc}, nil, poster)

	_, err := eng.Execute(context.Background(), ApproveLoan, Args{
		"accountNumber": float64(12),
		"approvalDate":  "25 May 2025",
	})

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "approval-date-not-before-application", validation.Rule)
	assert.False(t, poster.called)
}

func TestApproveLoan_TemplateDefaults(t *testing.T) {
	doc := &template.Document{
		Kind: template.KindLoanApproval,
		Values: map[string]interface{}{
			"approvalDate":   dates.Date{Year: 2025, Month: 6, Day: 1},
			"approvalAmount": float64(10000),
		},
		Options: map[string]codes.Group{},
	}
	poster := &recordPoster{}
	eng := testEngine(&stubTemplates{doc: doc}, nil, poster)

	_, err := eng.Execute(context.Background(), ApproveLoan, Args{
		"accountNumber": float64(12),
	})
	require.NoError(t, err)

	body := decodeBody(t, poster.body)
	assert.Equal(t, "01 June 2025", body["approvedOnDate"])
	assert.Equal(t, "01 June 2025", body["expectedDisbursementDate"])
	assert.EqualValues(t, 10000, body["approvedLoanAmount"])
	assert.Equal(t, "", body["note"])
}

func TestApproveLoan_RejectsDisbursementBeforeApproval(t *testing.T) {
	doc := &template.Document{
		Kind: template.KindLoanApproval,
		Values: map[string]interface{}{
			"approvalDate":   dates.Date{Year: 2025, Month: 6, Day: 1},
			"approvalAmount": float64(10000),
		},
		Options: map[string]codes.Group{},
	}
	poster := &recordPoster{}
	eng := testEngine(&stubTemplates{doc: doc}, nil, poster)

	_, err := eng.Execute(context.Background(), ApproveLoan, Args{
		"accountNumber":            float64(12),
		"approvalDate":             "10 June 2025",
		"expectedDisbursementDate": "05 June 2025",
	})

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "disbursement-not-before-approval", validation.Rule)
	assert.False(t, poster.called)
}

func TestCreateClient_ConstantsAndISODates(t *testing.T) {
	poster := &recordPoster{}
	eng := testEngine(nil, nil, poster)

	_, err := eng.Execute(context.Background(), CreateClient, Args{
		"firstName": "Petra",
		"lastName":  "Yap",
	})
	require.NoError(t, err)

	assert.Equal(t, "/clients", poster.path)

	body := decodeBody(t, poster.body)
	assert.Equal(t, "Petra", body["firstname"])
	assert.EqualValues(t, 1, body["officeId"])
	assert.EqualValues(t, 1, body["legalFormId"])
	assert.Equal(t, "false", body["isStaff"])
	assert.Equal(t, false, body["active"])
	assert.Equal(t, "2025-05-09", body["activationDate"])
	assert.Equal(t, "2025-05-09", body["submittedOnDate"])
	assert.Equal(t, "yyyy-MM-dd", body["dateFormat"])
	assert.Equal(t, []interface{}{}, body["familyMembers"])
	// omitted optional arguments are not sent at all
	_, present := body["emailAddress"]
	assert.False(t, present)
}

func TestActivateClient_DefaultsToToday(t *testing.T) {
	poster := &recordPoster{}
	eng := testEngine(nil, nil, poster)

	_, err := eng.Execute(context.Background(), ActivateClient, Args{
		"clientId": float64(7),
	})
	require.NoError(t, err)

	assert.Equal(t, "/clients/7", poster.path)
	assert.Equal(t, "activate", poster.query.Get("command"))

	body := decodeBody(t, poster.body)
	assert.Equal(t, "09 May 2025", body["activationDate"])
	assert.Equal(t, "dd MMMM yyyy", body["dateFormat"])
}

func TestCallerDate_FormatMismatch(t *testing.T) {
	poster := &recordPoster{}
	eng := testEngine(nil, nil, poster)

	_, err := eng.Execute(context.Background(), ActivateClient, Args{
		"clientId":       float64(7),
		"activationDate": "2025-05-09",
	})

	var mismatch *dates.FormatMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.False(t, poster.called)
}

func TestAddAddress_ResolvesAndRoutes(t *testing.T) {
	source := &stubSource{groups: map[string]codes.Group{
		"addressType": {Name: "addressType", Values: []codes.Value{
			{ID: 14, Name: "Home"}, {ID: 15, Name: "Work"},
		}},
		"stateProvince": {Name: "stateProvince", Values: []codes.Value{
			{ID: 800, Name: "Oaxaca"},
		}},
		"country": {Name: "country", Values: []codes.Value{
			{ID: 900, Name: "Mexico"},
		}},
	}}
	poster := &recordPoster{}
	eng := testEngine(nil, source, poster)

	_, err := eng.Execute(context.Background(), AddAddress, Args{
		"clientId":     float64(7),
		"addressType":  "home",
		"addressLine1": "742 Evergreen Terrace",
		"city":         "Springfield",
		"postalCode":   "12345",
		"country":      "mexico",
	})
	require.NoError(t, err)

	assert.Equal(t, "/client/7/addresses", poster.path)
	assert.Equal(t, "14", poster.query.Get("type"))

	body := decodeBody(t, poster.body)
	assert.EqualValues(t, 14, body["addressTypeId"])
	assert.EqualValues(t, 900, body["countryId"])
	assert.Equal(t, "", body["addressLine2"])
	// optional state omitted entirely when not supplied
	_, present := body["stateProvinceId"]
	assert.False(t, present)
}

func TestAddAddress_UnknownTypeFails(t *testing.T) {
	source := &stubSource{groups: map[string]codes.Group{
		"addressType": {Name: "addressType", Values: []codes.Value{{ID: 14, Name: "Home"}}},
	}}
	poster := &recordPoster{}
	eng := testEngine(nil, source, poster)

	_, err := eng.Execute(context.Background(), AddAddress, Args{
		"clientId":     float64(7),
		"addressType":  "Igloo",
		"addressLine1": "x",
		"city":         "y",
		"postalCode":   "z",
	})

	var unresolved *UnresolvedCodeError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "addressType", unresolved.Group)
	assert.False(t, poster.called)
}

func TestAddFamilyMember_DefaultsAndNormalization(t *testing.T) {
	source := &stubSource{groups: map[string]codes.Group{
		"relationship": {Name: "relationship", Values: []codes.Value{
			{ID: 20, Name: "Spouse"},
		}},
		"gender": {Name: "gender", Values: []codes.Value{
			{ID: 15, Name: "Female"}, {ID: 16, Name: "Male"},
		}},
	}}
	poster := &recordPoster{}
	eng := testEngine(nil, source, poster)

	_, err := eng.Execute(context.Background(), AddFamilyMember, Args{
		"clientId":     float64(7),
		"firstName":    "Ana",
		"lastName":     "Yap",
		"age":          float64(30),
		"isDependent":  "Dependent",
		"relationship": "cousin", // unmatched, falls back to the configured default
		"gender":       "female",
		"dateOfBirth":  "03 June 1995",
	})
	require.NoError(t, err)

	body := decodeBody(t, poster.body)
	assert.Equal(t, "true", body["isDependent"])
	assert.EqualValues(t, 1, body["relationshipId"])
	assert.EqualValues(t, 15, body["genderId"])
	assert.Equal(t, "", body["middleName"])
	assert.Equal(t, "03 June 1995", body["dateOfBirth"])
	_, present := body["professionId"]
	assert.False(t, present)
}

func TestNewSavingsApplication_TemplateDefaults(t *testing.T) {
	doc := &template.Document{
		Kind: template.KindSavingsAccount,
		Values: map[string]interface{}{
			"nominalAnnualInterestRate":         float64(5.5),
			"interestCompoundingPeriodType":     int64(1),
			"interestPostingPeriodType":         int64(4),
			"interestCalculationType":           int64(1),
			"interestCalculationDaysInYearType": int64(365),
			"withdrawalFeeForTransfers":         "false",
			"allowOverdraft":                    "false",
			"enforceMinRequiredBalance":         "true",
			"charges":                           json.RawMessage(`[{"chargeId":9}]`),
		},
		Options: map[string]codes.Group{},
	}
	poster := &recordPoster{}
	eng := testEngine(&stubTemplates{doc: doc}, nil, poster)

	_, err := eng.Execute(context.Background(), NewSavingsApplication, Args{
		"clientId":   float64(7),
		"productId":  float64(2),
		"externalId": "CR03",
	})
	require.NoError(t, err)

	assert.Equal(t, "/savingsaccounts", poster.path)

	body := decodeBody(t, poster.body)
	assert.EqualValues(t, 7, body["clientId"])
	assert.EqualValues(t, 2, body["productId"])
	assert.EqualValues(t, 5.5, body["nominalAnnualInterestRate"])
	assert.EqualValues(t, 1, body["interestCompoundingPeriodType"])
	assert.EqualValues(t, 4, body["interestPostingPeriodType"])
	assert.EqualValues(t, 1, body["interestCalculationType"])
	assert.EqualValues(t, 365, body["interestCalculationDaysInYearType"])
	// template flags arrive as booleans but are posted as quoted strings
	assert.Equal(t, "false", body["allowOverdraft"])
	assert.Equal(t, "true", body["enforceMinRequiredBalance"])
	// the template's charges pass through untouched
	charges, ok := body["charges"].([]interface{})
	require.True(t, ok)
	require.Len(t, charges, 1)
	assert.Equal(t, "CR03", body["externalId"])
	assert.Equal(t, "09 May 2025", body["submittedOnDate"])
	assert.Equal(t, "dd MMMM yyyy", body["dateFormat"])
	assert.Equal(t, "dd MMMM", body["monthDayFormat"])
}

func TestNewSavingsApplication_FlagFallbacks(t *testing.T) {
	doc := &template.Document{
		Kind: template.KindSavingsAccount,
		Values: map[string]interface{}{
			"nominalAnnualInterestRate":         float64(0),
			"interestCompoundingPeriodType":     int64(1),
			"interestPostingPeriodType":         int64(4),
			"interestCalculationType":           int64(1),
			"interestCalculationDaysInYearType": int64(365),
		},
		Options: map[string]codes.Group{},
	}
	poster := &recordPoster{}
	eng := testEngine(&stubTemplates{doc: doc}, nil, poster)

	_, err := eng.Execute(context.Background(), NewSavingsApplication, Args{
		"clientId":  float64(7),
		"productId": float64(2),
	})
	require.NoError(t, err)

	body := decodeBody(t, poster.body)
	// flags and charges missing from the template fall back to constants
	assert.Equal(t, "false", body["allowOverdraft"])
	assert.Equal(t, "false", body["withdrawalFeeForTransfers"])
	assert.Equal(t, "false", body["enforceMinRequiredBalance"])
	assert.Equal(t, []interface{}{}, body["charges"])
	assert.Equal(t, "", body["externalId"])
}

func TestCreateSavingsProduct_Constants(t *testing.T) {
	source := &stubSource{currencies: []codes.Currency{
		{Code: "USD", Name: "US Dollar"},
	}}
	poster := &recordPoster{}
	eng := testEngine(nil, source, poster)

	_, err := eng.Execute(context.Background(), CreateSavingsProduct, Args{
		"name":        "WALLET",
		"shortName":   "WL01",
		"description": "WALLET PRODUCT",
		"currency":    "us dollar",
	})
	require.NoError(t, err)

	body := decodeBody(t, poster.body)
	assert.Equal(t, "USD", body["currencyCode"])
	assert.EqualValues(t, 2, body["digitsAfterDecimal"])
	assert.EqualValues(t, 0, body["nominalAnnualInterestRate"])
	assert.EqualValues(t, 4, body["interestPostingPeriodType"])
	assert.EqualValues(t, 365, body["interestCalculationDaysInYearType"])
	assert.Equal(t, "false", body["allowOverdraft"])
	assert.EqualValues(t, 1, body["accountingRule"])
}

func TestCreateLoanProduct_ResolvesFrequencyAndCurrency(t *testing.T) {
	doc := &template.Document{
		Kind:   template.KindLoanProduct,
		Values: map[string]interface{}{},
		Options: map[string]codes.Group{
			"repaymentFrequencyTypeOptions": {Name: "repaymentFrequencyTypeOptions", Values: []codes.Value{
				{ID: 0, Value: "Days"}, {ID: 1, Value: "Weeks"}, {ID: 2, Value: "Months"},
			}},
		},
	}
	source := &stubSource{currencies: []codes.Currency{{Code: "USD", Name: "US Dollar"}}}
	poster := &recordPoster{}
	eng := testEngine(&stubTemplates{doc: doc}, source, poster)

	_, err := eng.Execute(context.Background(), CreateLoanProduct, Args{
		"name":                   "BRONZE",
		"shortName":              "LB01",
		"principal":              float64(10000),
		"numberOfRepayments":     float64(12),
		"nominalInterestRate":    float64(1.0),
		"repaymentFrequency":     float64(1),
		"repaymentFrequencyType": "MONTHS",
		"currency":               "USD",
	})
	require.NoError(t, err)

	body := decodeBody(t, poster.body)
	assert.EqualValues(t, 2, body["repaymentFrequencyType"])
	assert.Equal(t, "USD", body["currencyCode"])
	assert.Equal(t, "creocore-strategy", body["transactionProcessingStrategyCode"])
	assert.Equal(t, "CUMULATIVE", body["loanScheduleType"])

	overrides, ok := body["allowAttributeOverrides"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "true", overrides["amortizationType"])
}

func TestNewLoanApplication_TemplateAndOverrides(t *testing.T) {
	doc := &template.Document{
		Kind: template.KindLoanApplication,
		Values: map[string]interface{}{
			"amortizationType":                  int64(1),
			"interestCalculationPeriodType":     int64(1),
			"interestRateFrequencyType":         int64(2),
			"interestRatePerPeriod":             float64(12.5),
			"interestType":                      int64(0),
			"isEqualAmortization":               "false",
			"isTopup":                           "false",
			"termFrequency":                     int64(12),
			"termPeriodFrequencyType":           int64(2),
			"repaymentFrequencyType":            int64(2),
			"numberOfRepayments":                int64(12),
			"repaymentEvery":                    int64(1),
			"principal":                         float64(10000),
			"expectedDisbursementDate":          dates.Date{Year: 2025, Month: 6, Day: 1},
			"transactionProcessingStrategyCode": "mifos-standard-strategy",
			"productExternalId":                 "LP-01",
		},
		Options: map[string]codes.Group{},
	}
	poster := &recordPoster{}
	eng := testEngine(&stubTemplates{doc: doc}, nil, poster)

	_, err := eng.Execute(context.Background(), NewLoanApplication, Args{
		"clientId":  float64(7),
		"productId": float64(2),
		"loanType":  "Individual",
		"principal": float64(5000), // caller override wins over the template
	})
	require.NoError(t, err)

	body := decodeBody(t, poster.body)
	assert.Equal(t, "individual", body["loanType"])
	assert.EqualValues(t, 5000, body["principal"])
	assert.EqualValues(t, 12, body["numberOfRepayments"])
	assert.Equal(t, "01 June 2025", body["expectedDisbursementDate"])
	assert.Equal(t, "09 May 2025", body["submittedOnDate"])
	assert.Equal(t, "LP-01", body["externalId"])
	assert.Equal(t, "mifos-standard-strategy", body["transactionProcessingStrategyCode"])
	assert.Equal(t, "false", body["allowPartialPeriodInterestCalculation"])
	assert.Equal(t, []interface{}{}, body["collateral"])
}

func TestRepayLoan_DefaultsDateToToday(t *testing.T) {
	doc := paymentOptionsDoc(template.KindLoanTransaction, map[string]interface{}{
		"date":   dates.Date{Year: 2025, Month: 4, Day: 10},
		"amount": float64(6687.59),
	})
	poster := &recordPoster{}
	eng := testEngine(&stubTemplates{doc: doc}, nil, poster)

	_, err := eng.Execute(context.Background(), RepayLoan, Args{
		"accountNumber": float64(12),
		"paymentType":   "Cash",
	})
	require.NoError(t, err)

	assert.Equal(t, "/loans/12/transactions", poster.path)
	assert.Equal(t, "repayment", poster.query.Get("command"))

	body := decodeBody(t, poster.body)
	// the repayment date defaults to today, not to the template's date
	assert.Equal(t, "09 May 2025", body["transactionDate"])
	assert.EqualValues(t, 6687.59, body["transactionAmount"])
	assert.EqualValues(t, 1, body["paymentTypeId"])
}

func TestTemplateFailureAborts(t *testing.T) {
	tplErr := &template.UnavailableError{Kind: template.KindLoanApproval, Err: errors.New("404")}
	poster := &recordPoster{}
	eng := testEngine(&stubTemplates{err: tplErr}, nil, poster)

	_, err := eng.Execute(context.Background(), ApproveLoan, Args{
		"accountNumber": float64(99),
	})

	var unavailable *template.UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.False(t, poster.called)
}

func TestMissingRequiredArgument(t *testing.T) {
	poster := &recordPoster{}
	eng := testEngine(nil, nil, poster)

	_, err := eng.Execute(context.Background(), CreateClient, Args{
		"firstName": "Petra",
	})

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "required-field", validation.Rule)
	assert.False(t, poster.called)
}

func TestFractionalIDRejected(t *testing.T) {
	poster := &recordPoster{}
	eng := testEngine(nil, nil, poster)

	_, err := eng.Execute(context.Background(), ActivateClient, Args{
		"clientId": float64(7.9),
	})

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "required-argument", validation.Rule)
	assert.False(t, poster.called)
}

func TestNegativeAmountRejected(t *testing.T) {
	doc := paymentOptionsDoc(template.KindSavingsTransaction, map[string]interface{}{
		"date": dates.Date{Year: 2025, Month: 5, Day: 1},
	})
	poster := &recordPoster{}
	eng := testEngine(&stubTemplates{doc: doc}, nil, poster)

	_, err := eng.Execute(context.Background(), NewSavingsTransaction, Args{
		"accountNumber":     float64(3),
		"transaction":       "deposit",
		"paymentType":       "Cash",
		"transactionAmount": float64(-5),
	})

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "positive-amount", validation.Rule)
	assert.False(t, poster.called)
}
