package tools

import (
	"context"
	"encoding/json"

	mcpTypes "github.com/mark3labs/mcp-go/mcp"

	"github.com/mifos-community/mifosx-mcp/internal/engine"
)

func (r *Registry) registerOperations(exec Executor) {
	op := func(o engine.Operation) invoker {
		return func(ctx context.Context, args map[string]interface{}) (json.RawMessage, error) {
			return exec.Execute(ctx, o, engine.Args(args))
		}
	}

	r.add(mcpTypes.NewTool("create_client",
		mcpTypes.WithDescription("Create a client using first name, last name, and optionally email address, mobile number and external id. The client is created inactive; use activate_client afterwards."),
		mcpTypes.WithString("firstName", mcpTypes.Required(), mcpTypes.Description("First name (e.g. Jhon)")),
		mcpTypes.WithString("lastName", mcpTypes.Required(), mcpTypes.Description("Last name (e.g. Doe)")),
		mcpTypes.WithString("emailAddress", mcpTypes.Description("Optional email address (e.g. jhon@gmail.com)")),
		mcpTypes.WithString("mobileNo", mcpTypes.Description("Optional mobile number (e.g. +5215522649494)")),
		mcpTypes.WithString("externalId", mcpTypes.Description("Optional external id (e.g. VR12)")),
	), op(engine.CreateClient))

	r.add(mcpTypes.NewTool("activate_client",
		mcpTypes.WithDescription("Activate a client. Optionally provide an activation date; if omitted, today's date is used."),
		mcpTypes.WithNumber("clientId", mcpTypes.Required(), mcpTypes.Description("Client id (e.g. 1)")),
		mcpTypes.WithString("activationDate", mcpTypes.Description("Activation date in 'dd MMMM yyyy' format (e.g. 22 April 2025)")),
	), op(engine.ActivateClient))

	r.add(mcpTypes.NewTool("add_address",
		mcpTypes.WithDescription("Add an address to a client. The address type, state/province and country are given by name and resolved against the backend's code values."),
		mcpTypes.WithNumber("clientId", mcpTypes.Required(), mcpTypes.Description("Client id (e.g. 1)")),
		mcpTypes.WithString("addressType", mcpTypes.Required(), mcpTypes.Description("Address type (e.g. Home)")),
		mcpTypes.WithString("addressLine1", mcpTypes.Required(), mcpTypes.Description("Address line 1 (e.g. 742 Evergreen Terrace)")),
		mcpTypes.WithString("addressLine2", mcpTypes.Description("Address line 2 (e.g. Apt 2B)")),
		mcpTypes.WithString("addressLine3", mcpTypes.Description("Address line 3 (e.g. Floor 3)")),
		mcpTypes.WithString("city", mcpTypes.Required(), mcpTypes.Description("City (e.g. Springfield)")),
		mcpTypes.WithString("stateProvince", mcpTypes.Description("State or province name (e.g. Oaxaca)")),
		mcpTypes.WithString("country", mcpTypes.Description("Country name (e.g. Mexico)")),
		mcpTypes.WithString("postalCode", mcpTypes.Required(), mcpTypes.Description("Postal code (e.g. 12345)")),
	), op(engine.AddAddress))

	r.add(mcpTypes.NewTool("add_family_member",
		mcpTypes.WithDescription("Add a family member to a client. Relationship and gender fall back to configured defaults when the name matches no code value."),
		mcpTypes.WithNumber("clientId", mcpTypes.Required(), mcpTypes.Description("Client id (e.g. 1)")),
		mcpTypes.WithString("firstName", mcpTypes.Required(), mcpTypes.Description("First name (e.g. Jhon)")),
		mcpTypes.WithString("middleName", mcpTypes.Description("Middle name (e.g. Cena)")),
		mcpTypes.WithString("lastName", mcpTypes.Required(), mcpTypes.Description("Last name (e.g. Doe)")),
		mcpTypes.WithString("qualification", mcpTypes.Description("Qualification (e.g. MBA)")),
		mcpTypes.WithNumber("age", mcpTypes.Required(), mcpTypes.Description("Age (e.g. 25)")),
		mcpTypes.WithString("isDependent", mcpTypes.Description("Whether the member is a dependent (e.g. Dependent)")),
		mcpTypes.WithString("relationship", mcpTypes.Required(), mcpTypes.Description("Relationship (e.g. friend)")),
		mcpTypes.WithString("gender", mcpTypes.Required(), mcpTypes.Description("Gender (e.g. male)")),
		mcpTypes.WithString("profession", mcpTypes.Description("Profession (e.g. unemployed)")),
		mcpTypes.WithString("maritalStatus", mcpTypes.Description("Marital status (e.g. married)")),
		mcpTypes.WithString("dateOfBirth", mcpTypes.Required(), mcpTypes.Description("Date of birth in 'dd MMMM yyyy' format (e.g. 03 June 2003)")),
	), op(engine.AddFamilyMember))

	r.add(mcpTypes.NewTool("create_savings_product",
		mcpTypes.WithDescription("Create a savings product from name, short name, description and currency. Every other value is set from standard defaults."),
		mcpTypes.WithString("name", mcpTypes.Required(), mcpTypes.Description("Product name (e.g. WALLET)")),
		mcpTypes.WithString("shortName", mcpTypes.Required(), mcpTypes.Description("Short name (e.g. WL01)")),
		mcpTypes.WithString("description", mcpTypes.Required(), mcpTypes.Description("Short description (e.g. WALLET PRODUCT)")),
		mcpTypes.WithString("currency", mcpTypes.Required(), mcpTypes.Description("Currency code or name (e.g. USD or US Dollar)")),
	), op(engine.CreateSavingsProduct))

	r.add(mcpTypes.NewTool("new_savings_application",
		mcpTypes.WithDescription("Open a savings account application for a client and product. Interest settings and charges come from the product's template."),
		mcpTypes.WithNumber("clientId", mcpTypes.Required(), mcpTypes.Description("Client id (e.g. 1)")),
		mcpTypes.WithNumber("productId", mcpTypes.Required(), mcpTypes.Description("Savings product id (e.g. 1)")),
		mcpTypes.WithString("externalId", mcpTypes.Description("Optional external id (e.g. CR03)")),
	), op(engine.NewSavingsApplication))

	r.add(mcpTypes.NewTool("approve_savings_account",
		mcpTypes.WithDescription("Approve a savings account, optionally with a note. The approval date is today."),
		mcpTypes.WithNumber("accountNumber", mcpTypes.Required(), mcpTypes.Description("Savings account number (e.g. 1)")),
		mcpTypes.WithString("note", mcpTypes.Description("Note for approval consideration")),
	), op(engine.ApproveSavings))

	r.add(mcpTypes.NewTool("activate_savings_account",
		mcpTypes.WithDescription("Activate an approved savings account. The activation date is today."),
		mcpTypes.WithNumber("accountNumber", mcpTypes.Required(), mcpTypes.Description("Savings account number (e.g. 1)")),
	), op(engine.ActivateSavings))

	r.add(mcpTypes.NewTool("new_savings_transaction",
		mcpTypes.WithDescription("Record a savings deposit or withdrawal. The payment type name is resolved against the account's configured payment types; the date defaults to the template's suggestion."),
		mcpTypes.WithNumber("accountNumber", mcpTypes.Required(), mcpTypes.Description("Savings account number (e.g. 1)")),
		mcpTypes.WithString("transaction", mcpTypes.Required(), mcpTypes.Description("Transaction kind: deposit or withdrawal")),
		mcpTypes.WithString("paymentType", mcpTypes.Required(), mcpTypes.Description("Payment type name (e.g. Money Transfer)")),
		mcpTypes.WithNumber("transactionAmount", mcpTypes.Required(), mcpTypes.Description("Amount (e.g. 1000)")),
		mcpTypes.WithString("note", mcpTypes.Description("Optional note")),
		mcpTypes.WithString("transactionDate", mcpTypes.Description("Optional date in 'dd MMMM yyyy' format (e.g. 09 May 2025)")),
	), op(engine.NewSavingsTransaction))

	r.add(mcpTypes.NewTool("create_loan_product",
		mcpTypes.WithDescription("Create a loan product from its core terms. The repayment frequency type is resolved by name (DAYS, WEEKS, MONTHS...); every other value is set from standard defaults."),
		mcpTypes.WithString("name", mcpTypes.Required(), mcpTypes.Description("Product name (e.g. BRONZE)")),
		mcpTypes.WithString("shortName", mcpTypes.Required(), mcpTypes.Description("Short name (e.g. LB01)")),
		mcpTypes.WithNumber("principal", mcpTypes.Required(), mcpTypes.Description("Principal amount (e.g. 10000)")),
		mcpTypes.WithNumber("numberOfRepayments", mcpTypes.Required(), mcpTypes.Description("Number of repayments (e.g. 12)")),
		mcpTypes.WithNumber("nominalInterestRate", mcpTypes.Required(), mcpTypes.Description("Nominal interest rate per period (e.g. 1.0)")),
		mcpTypes.WithNumber("repaymentFrequency", mcpTypes.Required(), mcpTypes.Description("Interval between repayments (e.g. 1)")),
		mcpTypes.WithString("repaymentFrequencyType", mcpTypes.Required(), mcpTypes.Description("Unit of time between repayments (e.g. MONTHS)")),
		mcpTypes.WithString("currency", mcpTypes.Required(), mcpTypes.Description("Currency code or name (e.g. USD or US Dollar)")),
	), op(engine.CreateLoanProduct))

	r.add(mcpTypes.NewTool("new_loan_application",
		mcpTypes.WithDescription("Open a loan application for a client and product. The product's terms come from the loan template; disbursement date, repayments, principal and repayment interval can be overridden."),
		mcpTypes.WithNumber("clientId", mcpTypes.Required(), mcpTypes.Description("Client id (e.g. 1)")),
		mcpTypes.WithString("loanType", mcpTypes.Required(), mcpTypes.Description("Loan type (e.g. Individual)")),
		mcpTypes.WithNumber("productId", mcpTypes.Required(), mcpTypes.Description("Loan product id (e.g. 2)")),
		mcpTypes.WithString("expectedDisbursementDate", mcpTypes.Description("Optional disbursement date in 'dd MMMM yyyy' format (e.g. 14 April 2025)")),
		mcpTypes.WithNumber("numberOfRepayments", mcpTypes.Description("Optional number of repayments (e.g. 2)")),
		mcpTypes.WithNumber("principal", mcpTypes.Description("Optional principal (e.g. 1000)")),
		mcpTypes.WithNumber("repaymentEvery", mcpTypes.Description("Optional repayment interval (e.g. 2)")),
	), op(engine.NewLoanApplication))

	r.add(mcpTypes.NewTool("approve_loan_account",
		mcpTypes.WithDescription("Approve a loan account. The approval date may not precede the application date, and the expected disbursement date may not precede the approval date."),
		mcpTypes.WithNumber("accountNumber", mcpTypes.Required(), mcpTypes.Description("Loan account number (e.g. 1)")),
		mcpTypes.WithString("approvalDate", mcpTypes.Description("Optional approval date in 'dd MMMM yyyy' format (e.g. 29 May 2025)")),
		mcpTypes.WithString("expectedDisbursementDate", mcpTypes.Description("Optional expected disbursement date in 'dd MMMM yyyy' format")),
		mcpTypes.WithNumber("approvedLoanAmount", mcpTypes.Description("Optional approved amount (e.g. 10000)")),
		mcpTypes.WithString("note", mcpTypes.Description("Note for approval consideration")),
	), op(engine.ApproveLoan))

	r.add(mcpTypes.NewTool("disburse_loan_account",
		mcpTypes.WithDescription("Disburse an approved loan. The payment type name must match one of the account's configured payment types; the amount defaults to the approved amount."),
		mcpTypes.WithNumber("accountNumber", mcpTypes.Required(), mcpTypes.Description("Loan account number (e.g. 1)")),
		mcpTypes.WithString("paymentType", mcpTypes.Required(), mcpTypes.Description("Payment type name (e.g. Money Transfer)")),
		mcpTypes.WithNumber("transactionAmount", mcpTypes.Description("Optional disbursement amount (e.g. 10000)")),
		mcpTypes.WithString("externalId", mcpTypes.Description("Optional external id for the transaction (e.g. LDT01)")),
		mcpTypes.WithString("note", mcpTypes.Description("Optional note")),
		mcpTypes.WithString("paymentAccountNumber", mcpTypes.Description("Payment account number (e.g. 100)")),
		mcpTypes.WithString("paymentCheckNumber", mcpTypes.Description("Check number (e.g. 101)")),
		mcpTypes.WithString("paymentRoutingCode", mcpTypes.Description("Bank routing code (e.g. 102)")),
		mcpTypes.WithString("paymentReceiptNumber", mcpTypes.Description("Receipt number (e.g. 103)")),
		mcpTypes.WithString("paymentBankNumber", mcpTypes.Description("Bank number (e.g. 104)")),
	), op(engine.DisburseLoan))

	r.add(mcpTypes.NewTool("repay_loan",
		mcpTypes.WithDescription("Record a loan repayment. The amount defaults to the expected repayment amount and the date defaults to today."),
		mcpTypes.WithNumber("accountNumber", mcpTypes.Required(), mcpTypes.Description("Loan account number (e.g. 1)")),
		mcpTypes.WithString("paymentType", mcpTypes.Required(), mcpTypes.Description("Payment type name (e.g. Money Transfer)")),
		mcpTypes.WithNumber("amount", mcpTypes.Description("Optional repayment amount (e.g. 6687.59)")),
		mcpTypes.WithString("transactionDate", mcpTypes.Description("Optional date in 'dd MMMM yyyy' format (e.g. 10 June 2025)")),
		mcpTypes.WithString("externalId", mcpTypes.Description("Optional external id for the transaction (e.g. RPT01)")),
		mcpTypes.WithString("note", mcpTypes.Description("Optional note")),
		mcpTypes.WithString("paymentAccountNumber", mcpTypes.Description("Payment account number (e.g. 100)")),
		mcpTypes.WithString("paymentCheckNumber", mcpTypes.Description("Check number (e.g. 101)")),
		mcpTypes.WithString("paymentRoutingCode", mcpTypes.Description("Bank routing code (e.g. 102)")),
		mcpTypes.WithString("paymentReceiptNumber", mcpTypes.Description("Receipt number (e.g. 103)")),
		mcpTypes.WithString("paymentBankNumber", mcpTypes.Description("Bank number (e.g. 104)")),
	), op(engine.RepayLoan))
}
