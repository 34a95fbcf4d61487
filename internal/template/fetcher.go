package template

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/mifos-community/mifosx-mcp/internal/codes"
	"github.com/mifos-community/mifosx-mcp/internal/dates"
)

// Getter is the read side of the backend transport.
type Getter interface {
	Get(ctx context.Context, path string, query url.Values, out interface{}) error
}

// Fetcher retrieves template documents from the backend.
type Fetcher struct {
	client Getter
	logger *logrus.Logger
}

func NewFetcher(client Getter, logger *logrus.Logger) *Fetcher {
	return &Fetcher{client: client, logger: logger}
}

// SavingsAccount fetches the savings application template for a client and
// product pairing.
func (f *Fetcher) SavingsAccount(ctx context.Context, clientID, productID int64) (*Document, error) {
	var decoded struct {
		NominalAnnualInterestRate         *float64 `json:"nominalAnnualInterestRate"`
		InterestCompoundingPeriodType     *typeRef `json:"interestCompoundingPeriodType"`
		InterestPostingPeriodType         *typeRef `json:"interestPostingPeriodType"`
		InterestCalculationType           *typeRef `json:"interestCalculationType"`
		InterestCalculationDaysInYearType *typeRef `json:"interestCalculationDaysInYearType"`
		WithdrawalFeeForTransfers         *bool    `json:"withdrawalFeeForTransfers"`
		AllowOverdraft                    *bool    `json:"allowOverdraft"`
		EnforceMinRequiredBalance         *bool    `json:"enforceMinRequiredBalance"`

		Charges json.RawMessage `json:"charges"`
	}

	q := url.Values{}
	q.Set("clientId", strconv.FormatInt(clientID, 10))
	q.Set("productId", strconv.FormatInt(productID, 10))

	if err := f.client.Get(ctx, "/savingsaccounts/template", q, &decoded); err != nil {
		return nil, &UnavailableError{Kind: KindSavingsAccount, Err: err}
	}

	doc := newDocument(KindSavingsAccount)
	doc.putNumber("nominalAnnualInterestRate", decoded.NominalAnnualInterestRate)
	doc.putRef("interestCompoundingPeriodType", decoded.InterestCompoundingPeriodType)
	doc.putRef("interestPostingPeriodType", decoded.InterestPostingPeriodType)
	doc.putRef("interestCalculationType", decoded.InterestCalculationType)
	doc.putRef("interestCalculationDaysInYearType", decoded.InterestCalculationDaysInYearType)
	doc.putBool("withdrawalFeeForTransfers", decoded.WithdrawalFeeForTransfers)
	doc.putBool("allowOverdraft", decoded.AllowOverdraft)
	doc.putBool("enforceMinRequiredBalance", decoded.EnforceMinRequiredBalance)
	if decoded.Charges != nil {
		doc.Values["charges"] = decoded.Charges
	}
	return doc, nil
}

// SavingsTransaction fetches the transaction template of a savings account:
// the suggested transaction date and the configured payment types.
func (f *Fetcher) SavingsTransaction(ctx context.Context, accountID int64) (*Document, error) {
	var decoded struct {
		Date               dates.FlexDate `json:"date"`
		PaymentTypeOptions []codes.Value  `json:"paymentTypeOptions"`
	}

	path := fmt.Sprintf("/savingsaccounts/%d/transactions/template", accountID)
	if err := f.client.Get(ctx, path, nil, &decoded); err != nil {
		return nil, &UnavailableError{Kind: KindSavingsTransaction, Err: err}
	}

	doc := newDocument(KindSavingsTransaction)
	doc.putDate("date", decoded.Date)
	doc.putOptions("paymentTypeOptions", decoded.PaymentTypeOptions)
	return doc, nil
}

// LoanProduct fetches the loan product template; only its option lists are
// consumed.
func (f *Fetcher) LoanProduct(ctx context.Context) (*Document, error) {
	var decoded struct {
		RepaymentFrequencyTypeOptions []codes.Value `json:"repaymentFrequencyTypeOptions"`
	}

	if err := f.client.Get(ctx, "/loanproducts/template", nil, &decoded); err != nil {
		return nil, &UnavailableError{Kind: KindLoanProduct, Err: err}
	}

	doc := newDocument(KindLoanProduct)
	doc.putOptions("repaymentFrequencyTypeOptions", decoded.RepaymentFrequencyTypeOptions)
	return doc, nil
}

// LoanApplication fetches the loan application template for a client and
// product pairing. The template carries the product's terms, which become
// the application's defaults.
func (f *Fetcher) LoanApplication(ctx context.Context, clientID, productID int64, loanType string) (*Document, error) {
	var decoded struct {
		AmortizationType              *typeRef       `json:"amortizationType"`
		InterestCalculationPeriodType *typeRef       `json:"interestCalculationPeriodType"`
		InterestRateFrequencyType     *typeRef       `json:"interestRateFrequencyType"`
		InterestRatePerPeriod         *float64       `json:"interestRatePerPeriod"`
		InterestType                  *typeRef       `json:"interestType"`
		IsEqualAmortization           *bool          `json:"isEqualAmortization"`
		IsTopup                       *bool          `json:"isTopup"`
		TermFrequency                 *int64         `json:"termFrequency"`
		TermPeriodFrequencyType       *typeRef       `json:"termPeriodFrequencyType"`
		RepaymentFrequencyType        *typeRef       `json:"repaymentFrequencyType"`
		NumberOfRepayments            *int64         `json:"numberOfRepayments"`
		RepaymentEvery                *int64         `json:"repaymentEvery"`
		Principal                     *float64       `json:"principal"`
		ExpectedDisbursementDate      dates.FlexDate `json:"expectedDisbursementDate"`
		TransactionProcessingStrategy *string        `json:"transactionProcessingStrategyCode"`
		Product                       *struct {
			ExternalID *string `json:"externalId"`
		} `json:"product"`
	}

	q := url.Values{}
	q.Set("activeOnly", "true")
	q.Set("staffInSelectedOfficeOnly", "true")
	q.Set("productId", strconv.FormatInt(productID, 10))
	q.Set("clientId", strconv.FormatInt(clientID, 10))
	q.Set("templateType", loanType)

	if err := f.client.Get(ctx, "/loans/template", q, &decoded); err != nil {
		return nil, &UnavailableError{Kind: KindLoanApplication, Err: err}
	}

	doc := newDocument(KindLoanApplication)
	doc.putRef("amortizationType", decoded.AmortizationType)
	doc.putRef("interestCalculationPeriodType", decoded.InterestCalculationPeriodType)
	doc.putRef("interestRateFrequencyType", decoded.InterestRateFrequencyType)
	doc.putNumber("interestRatePerPeriod", decoded.InterestRatePerPeriod)
	doc.putRef("interestType", decoded.InterestType)
	doc.putBool("isEqualAmortization", decoded.IsEqualAmortization)
	doc.putBool("isTopup", decoded.IsTopup)
	doc.putInt("termFrequency", decoded.TermFrequency)
	doc.putRef("termPeriodFrequencyType", decoded.TermPeriodFrequencyType)
	doc.putRef("repaymentFrequencyType", decoded.RepaymentFrequencyType)
	doc.putInt("numberOfRepayments", decoded.NumberOfRepayments)
	doc.putInt("repaymentEvery", decoded.RepaymentEvery)
	doc.putNumber("principal", decoded.Principal)
	doc.putDate("expectedDisbursementDate", decoded.ExpectedDisbursementDate)
	doc.putText("transactionProcessingStrategyCode", decoded.TransactionProcessingStrategy)
	if decoded.Product != nil {
		doc.putText("productExternalId", decoded.Product.ExternalID)
	}
	return doc, nil
}

// LoanApproval fetches the approval template of a submitted loan: the
// suggested approval date and amount.
func (f *Fetcher) LoanApproval(ctx context.Context, accountID int64) (*Document, error) {
	var decoded struct {
		ApprovalDate   dates.FlexDate `json:"approvalDate"`
		ApprovalAmount *float64       `json:"approvalAmount"`
	}

	q := url.Values{}
	q.Set("templateType", "approval")

	path := fmt.Sprintf("/loans/%d/template", accountID)
	if err := f.client.Get(ctx, path, q, &decoded); err != nil {
		return nil, &UnavailableError{Kind: KindLoanApproval, Err: err}
	}

	doc := newDocument(KindLoanApproval)
	doc.putDate("approvalDate", decoded.ApprovalDate)
	doc.putNumber("approvalAmount", decoded.ApprovalAmount)
	return doc, nil
}

// LoanTransaction fetches the transaction template of a loan account for a
// given command ("disburse" or "repayment"): the suggested date and amount,
// and the configured payment types.
func (f *Fetcher) LoanTransaction(ctx context.Context, accountID int64, command string) (*Document, error) {
	var decoded struct {
		Date               dates.FlexDate `json:"date"`
		Amount             *float64       `json:"amount"`
		PaymentTypeOptions []codes.Value  `json:"paymentTypeOptions"`
	}

	q := url.Values{}
	q.Set("command", command)

	path := fmt.Sprintf("/loans/%d/transactions/template", accountID)
	if err := f.client.Get(ctx, path, q, &decoded); err != nil {
		return nil, &UnavailableError{Kind: KindLoanTransaction, Err: err}
	}

	doc := newDocument(KindLoanTransaction)
	doc.putDate("date", decoded.Date)
	doc.putNumber("amount", decoded.Amount)
	doc.putOptions("paymentTypeOptions", decoded.PaymentTypeOptions)
	return doc, nil
}
