package engine

import (
	"fmt"
	"strings"

	"github.com/mifos-community/mifosx-mcp/internal/dates"
	"github.com/mifos-community/mifosx-mcp/internal/template"
)

// Operation enumerates the supported backend actions.
type Operation string

const (
	CreateClient          Operation = "CreateClient"
	ActivateClient        Operation = "ActivateClient"
	AddAddress            Operation = "AddAddress"
	AddFamilyMember       Operation = "AddFamilyMember"
	CreateSavingsProduct  Operation = "CreateSavingsProduct"
	NewSavingsApplication Operation = "NewSavingsApplication"
	ApproveSavings        Operation = "ApproveSavings"
	ActivateSavings       Operation = "ActivateSavings"
	NewSavingsTransaction Operation = "NewSavingsTransaction"
	CreateLoanProduct     Operation = "CreateLoanProduct"
	NewLoanApplication    Operation = "NewLoanApplication"
	ApproveLoan           Operation = "ApproveLoan"
	DisburseLoan          Operation = "DisburseLoan"
	RepayLoan             Operation = "RepayLoan"
)

// Role classifies a payload field for synthesis and serialization. Text
// fields absent after precedence resolution are not sent unless the
// descriptor gives them an empty-string constant; numeric fields are always
// omitted when absent.
type Role int

const (
	RoleText Role = iota
	RoleNumber
	RoleInt
	RoleBool
	RoleDate
	RoleList
)

// TemplateKind names the template dependency of an operation.
type TemplateKind int

const (
	TemplateNone TemplateKind = iota
	TemplateSavingsAccount
	TemplateSavingsTransaction
	TemplateLoanProduct
	TemplateLoanApplication
	TemplateLoanApproval
	TemplateLoanTransaction
)

// CodeRef declares how a field's free-text name becomes a numeric id.
// Exactly one of List, Group, or Currency is set. DefaultFrom names a
// configured fallback id used when the name is blank or unmatched; without
// it an unmatched required field is a hard UnresolvedCode failure.
type CodeRef struct {
	List        string
	Group       string
	Currency    bool
	DefaultFrom string
}

// FieldSpec declares one payload field and its value precedence: caller
// argument, then template default, then today's date, then the operation
// constant. A field left without a value is omitted; required fields fail
// validation instead.
type FieldSpec struct {
	Name        string
	Arg         string
	Role        Role
	Required    bool
	Positive    bool
	TemplateKey string
	Today       bool
	Const       interface{}
	Layout      string
	Resolve     *CodeRef
	Normalize   func(string) string
}

// Route describes where the resolved request is posted. Path may contain a
// single %d placeholder filled from PathArg. The command qualifier is either
// fixed or taken from a caller argument restricted to CommandAllowed.
// QueryFromField copies one resolved field into the query string.
type Route struct {
	Path           string
	PathArg        string
	Command        string
	CommandArg     string
	CommandAllowed []string
	QueryFromField string
	QueryName      string
}

// RuleContext is what cross-field rules see: the resolved payload, the
// template document, and the operation's single "today" reading.
type RuleContext struct {
	fields map[string]interface{}
	doc    *template.Document
	today  dates.Date
}

// Date returns a resolved date field.
func (rc *RuleContext) Date(field string) (dates.Date, bool) {
	d, ok := rc.fields[field].(dates.Date)
	return d, ok
}

// Today returns the operation's single "today" reading.
func (rc *RuleContext) Today() dates.Date { return rc.today }

// TemplateDate returns a date default from the template document.
func (rc *RuleContext) TemplateDate(key string) (dates.Date, bool) {
	if rc.doc == nil {
		return dates.Date{}, false
	}
	return rc.doc.Date(key)
}

// Rule is one cross-field predicate. A non-nil return aborts the operation
// with a ValidationError carrying the rule's name.
type Rule struct {
	Name  string
	Check func(rc *RuleContext) error
}

// Descriptor is the complete compile-time contract of one operation.
type Descriptor struct {
	Op       Operation
	Template TemplateKind
	Fields   []FieldSpec
	Route    Route
	Rules    []Rule
}

// Lookup returns the descriptor for op.
func Lookup(op Operation) (*Descriptor, bool) {
	d, ok := descriptors[op]
	return d, ok
}

// Operations lists every known operation in a stable order.
func Operations() []Operation {
	return []Operation{
		CreateClient, ActivateClient, AddAddress, AddFamilyMember,
		CreateSavingsProduct, NewSavingsApplication, ApproveSavings,
		ActivateSavings, NewSavingsTransaction, CreateLoanProduct,
		NewLoanApplication, ApproveLoan, DisburseLoan, RepayLoan,
	}
}

func emptyList() interface{} { return []interface{}{} }

// normalizeDependent maps the free-form "is dependent" answer to the
// backend's quoted boolean.
func normalizeDependent(v string) string {
	if strings.EqualFold(v, "dependent") || strings.EqualFold(v, "is dependent") || strings.EqualFold(v, "true") {
		return "true"
	}
	return "false"
}

var approveLoanRules = []Rule{
	{
		Name: "approval-date-not-before-application",
		Check: func(rc *RuleContext) error {
			approved, ok := rc.Date("approvedOnDate")
			suggested, tplOK := rc.TemplateDate("approvalDate")
			if !ok || !tplOK {
				return nil
			}
			if approved.Before(suggested) {
				return fmt.Errorf("approval date %s precedes the application date %s",
					approved.Canonical(), suggested.Canonical())
			}
			return nil
		},
	},
	{
		Name: "disbursement-not-before-approval",
		Check: func(rc *RuleContext) error {
			disbursement, ok := rc.Date("expectedDisbursementDate")
			approved, approvedOK := rc.Date("approvedOnDate")
			if !ok || !approvedOK {
				return nil
			}
			if disbursement.Before(approved) {
				return fmt.Errorf("expected disbursement date %s precedes the approval date %s",
					disbursement.Canonical(), approved.Canonical())
			}
			return nil
		},
	},
}

var descriptors = map[Operation]*Descriptor{
	CreateClient: {
		Op: CreateClient,
		Fields: []FieldSpec{
			{Name: "firstname", Arg: "firstName", Role: RoleText, Required: true},
			{Name: "lastname", Arg: "lastName", Role: RoleText, Required: true},
			{Name: "emailAddress", Arg: "emailAddress", Role: RoleText},
			{Name: "mobileNo", Arg: "mobileNo", Role: RoleText},
			{Name: "externalId", Arg: "externalId", Role: RoleText},
			{Name: "officeId", Role: RoleInt, Const: int64(1)},
			{Name: "legalFormId", Role: RoleInt, Const: int64(1)},
			{Name: "isStaff", Role: RoleText, Const: "false"},
			{Name: "active", Role: RoleBool, Const: false},
			{Name: "activationDate", Role: RoleDate, Today: true, Layout: dates.ISOLayout},
			{Name: "submittedOnDate", Role: RoleDate, Today: true, Layout: dates.ISOLayout},
			{Name: "familyMembers", Role: RoleList, Const: emptyList()},
			{Name: "dateFormat", Role: RoleText, Const: dates.ISOFormat},
			{Name: "locale", Role: RoleText, Const: "en"},
		},
		Route: Route{Path: "/clients"},
	},

	ActivateClient: {
		Op: ActivateClient,
		Fields: []FieldSpec{
			{Name: "activationDate", Arg: "activationDate", Role: RoleDate, Today: true},
			{Name: "dateFormat", Role: RoleText, Const: dates.CanonicalFormat},
			{Name: "locale", Role: RoleText, Const: "en"},
		},
		Route: Route{Path: "/clients/%d", PathArg: "clientId", Command: "activate"},
	},

	AddAddress: {
		Op: AddAddress,
		Fields: []FieldSpec{
			{Name: "addressTypeId", Arg: "addressType", Role: RoleInt, Required: true,
				Resolve: &CodeRef{Group: "addressType"}},
			{Name: "addressLine1", Arg: "addressLine1", Role: RoleText, Required: true},
			{Name: "addressLine2", Arg: "addressLine2", Role: RoleText, Const: ""},
			{Name: "addressLine3", Arg: "addressLine3", Role: RoleText, Const: ""},
			{Name: "city", Arg: "city", Role: RoleText, Required: true},
			{Name: "stateProvinceId", Arg: "stateProvince", Role: RoleInt,
				Resolve: &CodeRef{Group: "stateProvince"}},
			{Name: "countryId", Arg: "country", Role: RoleInt,
				Resolve: &CodeRef{Group: "country"}},
			{Name: "postalCode", Arg: "postalCode", Role: RoleText, Required: true},
		},
		Route: Route{
			Path: "/client/%d/addresses", PathArg: "clientId",
			QueryFromField: "addressTypeId", QueryName: "type",
		},
	},

	AddFamilyMember: {
		Op: AddFamilyMember,
		Fields: []FieldSpec{
			{Name: "firstName", Arg: "firstName", Role: RoleText, Required: true},
			{Name: "middleName", Arg: "middleName", Role: RoleText, Const: ""},
			{Name: "lastName", Arg: "lastName", Role: RoleText, Required: true},
			{Name: "qualification", Arg: "qualification", Role: RoleText, Const: ""},
			{Name: "age", Arg: "age", Role: RoleInt, Required: true, Positive: true},
			{Name: "isDependent", Arg: "isDependent", Role: RoleText, Const: "false",
				Normalize: normalizeDependent},
			{Name: "relationshipId", Arg: "relationship", Role: RoleInt, Required: true,
				Resolve: &CodeRef{Group: "relationship", DefaultFrom: "relationship"}},
			{Name: "genderId", Arg: "gender", Role: RoleInt, Required: true,
				Resolve: &CodeRef{Group: "gender", DefaultFrom: "gender"}},
			{Name: "professionId", Arg: "profession", Role: RoleInt,
				Resolve: &CodeRef{Group: "profession"}},
			{Name: "maritalStatusId", Arg: "maritalStatus", Role: RoleInt,
				Resolve: &CodeRef{Group: "maritalStatus"}},
			{Name: "dateOfBirth", Arg: "dateOfBirth", Role: RoleDate, Required: true},
			{Name: "dateFormat", Role: RoleText, Const: dates.CanonicalFormat},
			{Name: "locale", Role: RoleText, Const: "en"},
		},
		Route: Route{Path: "/clients/%d/familymembers", PathArg: "clientId"},
	},

	CreateSavingsProduct: {
		Op: CreateSavingsProduct,
		Fields: []FieldSpec{
			{Name: "name", Arg: "name", Role: RoleText, Required: true},
			{Name: "shortName", Arg: "shortName", Role: RoleText, Required: true},
			{Name: "description", Arg: "description", Role: RoleText, Required: true},
			{Name: "currencyCode", Arg: "currency", Role: RoleText, Required: true,
				Resolve: &CodeRef{Currency: true}},
			{Name: "digitsAfterDecimal", Role: RoleInt, Const: int64(2)},
			{Name: "nominalAnnualInterestRate", Role: RoleNumber, Const: float64(0)},
			{Name: "interestCompoundingPeriodType", Role: RoleInt, Const: int64(1)},
			{Name: "interestPostingPeriodType", Role: RoleInt, Const: int64(4)},
			{Name: "interestCalculationType", Role: RoleInt, Const: int64(1)},
			{Name: "interestCalculationDaysInYearType", Role: RoleInt, Const: int64(365)},
			{Name: "withdrawalFeeForTransfers", Role: RoleText, Const: "false"},
			{Name: "enforceMinRequiredBalance", Role: RoleText, Const: "false"},
			{Name: "allowOverdraft", Role: RoleText, Const: "false"},
			{Name: "withHoldTax", Role: RoleText, Const: "false"},
			{Name: "isDormancyTrackingActive", Role: RoleText, Const: "false"},
			{Name: "charges", Role: RoleList, Const: emptyList()},
			{Name: "accountingRule", Role: RoleInt, Const: int64(1)},
			{Name: "locale", Role: RoleText, Const: "en"},
		},
		Route: Route{Path: "/savingsproducts"},
	},

	NewSavingsApplication: {
		Op:       NewSavingsApplication,
		Template: TemplateSavingsAccount,
		Fields: []FieldSpec{
			{Name: "clientId", Arg: "clientId", Role: RoleInt, Required: true},
			{Name: "productId", Arg: "productId", Role: RoleInt, Required: true},
			{Name: "submittedOnDate", Role: RoleDate, Today: true},
			{Name: "externalId", Arg: "externalId", Role: RoleText, Const: ""},
			{Name: "nominalAnnualInterestRate", Role: RoleNumber, Required: true,
				TemplateKey: "nominalAnnualInterestRate"},
			{Name: "interestCompoundingPeriodType", Role: RoleInt, Required: true,
				TemplateKey: "interestCompoundingPeriodType"},
			{Name: "interestPostingPeriodType", Role: RoleInt, Required: true,
				TemplateKey: "interestPostingPeriodType"},
			{Name: "interestCalculationType", Role: RoleInt, Required: true,
				TemplateKey: "interestCalculationType"},
			{Name: "interestCalculationDaysInYearType", Role: RoleInt, Required: true,
				TemplateKey: "interestCalculationDaysInYearType"},
			{Name: "withdrawalFeeForTransfers", Role: RoleText,
				TemplateKey: "withdrawalFeeForTransfers", Const: "false"},
			{Name: "allowOverdraft", Role: RoleText,
				TemplateKey: "allowOverdraft", Const: "false"},
			{Name: "enforceMinRequiredBalance", Role: RoleText,
				TemplateKey: "enforceMinRequiredBalance", Const: "false"},
			{Name: "charges", Role: RoleList, TemplateKey: "charges", Const: emptyList()},
			{Name: "dateFormat", Role: RoleText, Const: dates.CanonicalFormat},
			{Name: "monthDayFormat", Role: RoleText, Const: dates.MonthDayFormat},
			{Name: "locale", Role: RoleText, Const: "en"},
		},
		Route: Route{Path: "/savingsaccounts"},
	},

	ApproveSavings: {
		Op: ApproveSavings,
		Fields: []FieldSpec{
			{Name: "approvedOnDate", Role: RoleDate, Today: true},
			{Name: "note", Arg: "note", Role: RoleText},
			{Name: "dateFormat", Role: RoleText, Const: dates.CanonicalFormat},
			{Name: "locale", Role: RoleText, Const: "en"},
		},
		Route: Route{Path: "/savingsaccounts/%d", PathArg: "accountNumber", Command: "approve"},
	},

	ActivateSavings: {
		Op: ActivateSavings,
		Fields: []FieldSpec{
			{Name: "activatedOnDate", Role: RoleDate, Today: true},
			{Name: "dateFormat", Role: RoleText, Const: dates.CanonicalFormat},
			{Name: "locale", Role: RoleText, Const: "en"},
		},
		Route: Route{Path: "/savingsaccounts/%d", PathArg: "accountNumber", Command: "activate"},
	},

	NewSavingsTransaction: {
		Op:       NewSavingsTransaction,
		Template: TemplateSavingsTransaction,
		Fields: []FieldSpec{
			{Name: "transactionDate", Arg: "transactionDate", Role: RoleDate,
				TemplateKey: "date"},
			{Name: "transactionAmount", Arg: "transactionAmount", Role: RoleNumber,
				Required: true, Positive: true},
			{Name: "paymentTypeId", Arg: "paymentType", Role: RoleInt, Required: true,
				Resolve: &CodeRef{List: "paymentTypeOptions"}},
			{Name: "note", Arg: "note", Role: RoleText, Const: ""},
			{Name: "dateFormat", Role: RoleText, Const: dates.CanonicalFormat},
			{Name: "locale", Role: RoleText, Const: "en"},
		},
		Route: Route{
			Path: "/savingsaccounts/%d/transactions", PathArg: "accountNumber",
			CommandArg: "transaction", CommandAllowed: []string{"deposit", "withdrawal"},
		},
	},

	CreateLoanProduct: {
		Op:       CreateLoanProduct,
		Template: TemplateLoanProduct,
		Fields: []FieldSpec{
			{Name: "name", Arg: "name", Role: RoleText, Required: true},
			{Name: "shortName", Arg: "shortName", Role: RoleText, Required: true},
			{Name: "principal", Arg: "principal", Role: RoleNumber, Required: true, Positive: true},
			{Name: "numberOfRepayments", Arg: "numberOfRepayments", Role: RoleInt,
				Required: true, Positive: true},
			{Name: "interestRatePerPeriod", Arg: "nominalInterestRate", Role: RoleNumber,
				Required: true},
			{Name: "repaymentEvery", Arg: "repaymentFrequency", Role: RoleInt,
				Required: true, Positive: true},
			{Name: "repaymentFrequencyType", Arg: "repaymentFrequencyType", Role: RoleInt,
				Required: true, Resolve: &CodeRef{List: "repaymentFrequencyTypeOptions"}},
			{Name: "currencyCode", Arg: "currency", Role: RoleText, Required: true,
				Resolve: &CodeRef{Currency: true}},
			{Name: "accountingRule", Role: RoleInt, Const: int64(1)},
			{Name: "accountMovesOutOfNPAOnlyOnArrearsCompletion", Role: RoleText, Const: "false"},
			{Name: "allowApprovedDisbursedAmountsOverApplied", Role: RoleText, Const: "false"},
			{Name: "allowAttributeOverrides", Role: RoleList, Const: map[string]interface{}{
				"amortizationType":                   "true",
				"graceOnArrearsAgeing":               "true",
				"graceOnPrincipalAndInterestPayment": "true",
				"inArrearsTolerance":                 "true",
				"interestCalculationPeriodType":      "true",
				"interestType":                       "true",
				"repaymentEvery":                     "true",
				"transactionProcessingStrategyCode":  "true",
			}},
			{Name: "allowVariableInstallments", Role: RoleText, Const: "false"},
			{Name: "amortizationType", Role: RoleInt, Const: int64(1)},
			{Name: "canDefineInstallmentAmount", Role: RoleText, Const: "false"},
			{Name: "canUseForTopup", Role: RoleText, Const: "false"},
			{Name: "charges", Role: RoleList, Const: emptyList()},
			{Name: "dateFormat", Role: RoleText, Const: dates.CanonicalFormat},
			{Name: "daysInMonthType", Role: RoleInt, Const: int64(1)},
			{Name: "daysInYearType", Role: RoleInt, Const: int64(1)},
			{Name: "digitsAfterDecimal", Role: RoleInt, Const: int64(2)},
			{Name: "disallowExpectedDisbursements", Role: RoleText, Const: "false"},
			{Name: "dueDaysForRepaymentEvent", Role: RoleInt, Const: int64(1)},
			{Name: "enableDownPayment", Role: RoleText, Const: "false"},
			{Name: "enableInstallmentLevelDelinquency", Role: RoleText, Const: "false"},
			{Name: "externalId", Role: RoleText, Const: ""},
			{Name: "holdGuaranteeFunds", Role: RoleText, Const: "false"},
			{Name: "includeInBorrowerCycle", Role: RoleText, Const: "false"},
			{Name: "inMultiplesOf", Role: RoleInt, Const: int64(0)},
			{Name: "interestCalculationPeriodType", Role: RoleInt, Const: int64(1)},
			{Name: "interestRateFrequencyType", Role: RoleInt, Const: int64(2)},
			{Name: "interestRateVariationsForBorrowerCycle", Role: RoleList, Const: emptyList()},
			{Name: "interestRecognitionOnDisbursementDate", Role: RoleText, Const: "false"},
			{Name: "interestType", Role: RoleInt, Const: int64(0)},
			{Name: "isEqualAmortization", Role: RoleText, Const: "false"},
			{Name: "isInterestRecalculationEnabled", Role: RoleText, Const: "false"},
			{Name: "isLinkedToFloatingInterestRates", Role: RoleText, Const: "false"},
			{Name: "loanScheduleType", Role: RoleText, Const: "CUMULATIVE"},
			{Name: "locale", Role: RoleText, Const: "en"},
			{Name: "numberOfRepaymentVariationsForBorrowerCycle", Role: RoleList, Const: emptyList()},
			{Name: "overDueDaysForRepaymentEvent", Role: RoleInt, Const: int64(1)},
			{Name: "principalVariationsForBorrowerCycle", Role: RoleList, Const: emptyList()},
			{Name: "repaymentStartDateType", Role: RoleInt, Const: int64(1)},
			{Name: "transactionProcessingStrategyCode", Role: RoleText, Const: "creocore-strategy"},
			{Name: "useBorrowerCycle", Role: RoleText, Const: "false"},
		},
		Route: Route{Path: "/loanproducts"},
	},

	NewLoanApplication: {
		Op:       NewLoanApplication,
		Template: TemplateLoanApplication,
		Fields: []FieldSpec{
			{Name: "clientId", Arg: "clientId", Role: RoleInt, Required: true},
			{Name: "productId", Arg: "productId", Role: RoleInt, Required: true},
			{Name: "loanType", Arg: "loanType", Role: RoleText, Required: true,
				Normalize: strings.ToLower},
			{Name: "expectedDisbursementDate", Arg: "expectedDisbursementDate", Role: RoleDate,
				Required: true, TemplateKey: "expectedDisbursementDate"},
			{Name: "numberOfRepayments", Arg: "numberOfRepayments", Role: RoleInt,
				Required: true, Positive: true, TemplateKey: "numberOfRepayments"},
			{Name: "principal", Arg: "principal", Role: RoleNumber,
				Required: true, Positive: true, TemplateKey: "principal"},
			{Name: "repaymentEvery", Arg: "repaymentEvery", Role: RoleInt,
				Required: true, Positive: true, TemplateKey: "repaymentEvery"},
			{Name: "amortizationType", Role: RoleInt, Required: true,
				TemplateKey: "amortizationType"},
			{Name: "interestCalculationPeriodType", Role: RoleInt, Required: true,
				TemplateKey: "interestCalculationPeriodType"},
			{Name: "interestRateFrequencyType", Role: RoleInt, Required: true,
				TemplateKey: "interestRateFrequencyType"},
			{Name: "interestRatePerPeriod", Role: RoleNumber, Required: true,
				TemplateKey: "interestRatePerPeriod"},
			{Name: "interestType", Role: RoleInt, Required: true, TemplateKey: "interestType"},
			{Name: "isEqualAmortization", Role: RoleText,
				TemplateKey: "isEqualAmortization", Const: "false"},
			{Name: "isTopup", Role: RoleText, TemplateKey: "isTopup", Const: "false"},
			{Name: "loanTermFrequency", Role: RoleInt, Required: true,
				TemplateKey: "termFrequency"},
			{Name: "loanTermFrequencyType", Role: RoleInt, Required: true,
				TemplateKey: "termPeriodFrequencyType"},
			{Name: "repaymentFrequencyType", Role: RoleInt, Required: true,
				TemplateKey: "repaymentFrequencyType"},
			{Name: "transactionProcessingStrategyCode", Role: RoleText, Required: true,
				TemplateKey: "transactionProcessingStrategyCode"},
			{Name: "externalId", Role: RoleText, TemplateKey: "productExternalId", Const: ""},
			{Name: "submittedOnDate", Role: RoleDate, Today: true},
			{Name: "allowPartialPeriodInterestCalculation", Role: RoleText, Const: "false"},
			{Name: "createStandingInstructionAtDisbursement", Role: RoleText, Const: ""},
			{Name: "repaymentsStartingFromDate", Role: RoleText, Const: ""},
			{Name: "charges", Role: RoleList, Const: emptyList()},
			{Name: "collateral", Role: RoleList, Const: emptyList()},
			{Name: "dateFormat", Role: RoleText, Const: dates.CanonicalFormat},
			{Name: "locale", Role: RoleText, Const: "en"},
		},
		Route: Route{Path: "/loans"},
	},

	ApproveLoan: {
		Op:       ApproveLoan,
		Template: TemplateLoanApproval,
		Fields: []FieldSpec{
			{Name: "approvedOnDate", Arg: "approvalDate", Role: RoleDate, Required: true,
				TemplateKey: "approvalDate"},
			{Name: "expectedDisbursementDate", Arg: "expectedDisbursementDate", Role: RoleDate,
				Required: true, TemplateKey: "approvalDate"},
			{Name: "approvedLoanAmount", Arg: "approvedLoanAmount", Role: RoleNumber,
				Required: true, Positive: true, TemplateKey: "approvalAmount"},
			{Name: "note", Arg: "note", Role: RoleText, Const: ""},
			{Name: "dateFormat", Role: RoleText, Const: dates.CanonicalFormat},
			{Name: "locale", Role: RoleText, Const: "en"},
		},
		Route: Route{Path: "/loans/%d", PathArg: "accountNumber", Command: "approve"},
		Rules: approveLoanRules,
	},

	DisburseLoan: {
		Op:       DisburseLoan,
		Template: TemplateLoanTransaction,
		Fields: []FieldSpec{
			{Name: "actualDisbursementDate", Role: RoleDate, Required: true,
				TemplateKey: "date"},
			{Name: "transactionAmount", Arg: "transactionAmount", Role: RoleNumber,
				Required: true, Positive: true, TemplateKey: "amount"},
			{Name: "paymentTypeId", Arg: "paymentType", Role: RoleInt, Required: true,
				Resolve: &CodeRef{List: "paymentTypeOptions"}},
			{Name: "externalId", Arg: "externalId", Role: RoleText, Const: ""},
			{Name: "note", Arg: "note", Role: RoleText, Const: ""},
			{Name: "accountNumber", Arg: "paymentAccountNumber", Role: RoleText, Const: ""},
			{Name: "checkNumber", Arg: "paymentCheckNumber", Role: RoleText, Const: ""},
			{Name: "routingCode", Arg: "paymentRoutingCode", Role: RoleText, Const: ""},
			{Name: "receiptNumber", Arg: "paymentReceiptNumber", Role: RoleText, Const: ""},
			{Name: "bankNumber", Arg: "paymentBankNumber", Role: RoleText, Const: ""},
			{Name: "dateFormat", Role: RoleText, Const: dates.CanonicalFormat},
			{Name: "locale", Role: RoleText, Const: "en"},
		},
		Route: Route{Path: "/loans/%d", PathArg: "accountNumber", Command: "disburse"},
	},

	RepayLoan: {
		Op:       RepayLoan,
		Template: TemplateLoanTransaction,
		Fields: []FieldSpec{
			{Name: "transactionDate", Arg: "transactionDate", Role: RoleDate, Today: true},
			{Name: "transactionAmount", Arg: "amount", Role: RoleNumber,
				Required: true, Positive: true, TemplateKey: "amount"},
			{Name: "paymentTypeId", Arg: "paymentType", Role: RoleInt, Required: true,
				Resolve: &CodeRef{List: "paymentTypeOptions"}},
			{Name: "externalId", Arg: "externalId", Role: RoleText, Const: ""},
			{Name: "note", Arg: "note", Role: RoleText, Const: ""},
			{Name: "accountNumber", Arg: "paymentAccountNumber", Role: RoleText, Const: ""},
			{Name: "checkNumber", Arg: "paymentCheckNumber", Role: RoleText, Const: ""},
			{Name: "routingCode", Arg: "paymentRoutingCode", Role: RoleText, Const: ""},
			{Name: "receiptNumber", Arg: "paymentReceiptNumber", Role: RoleText, Const: ""},
			{Name: "bankNumber", Arg: "paymentBankNumber", Role: RoleText, Const: ""},
			{Name: "dateFormat", Role: RoleText, Const: dates.CanonicalFormat},
			{Name: "locale", Role: RoleText, Const: "en"},
		},
		Route: Route{Path: "/loans/%d/transactions", PathArg: "accountNumber", Command: "repayment"},
	},
}
