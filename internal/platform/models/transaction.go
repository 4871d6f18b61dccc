package models

// Transaction is one record of the webhook body. All values are carried as
// strings, exactly as the upstream platform emits them.
type Transaction struct {
	ID                             string `json:"id" yaml:"id"`
	WebhookTriggerType             string `json:"webhook_trigger_type" yaml:"webhook_trigger_type"`
	UserID                         string `json:"user_id" yaml:"user_id"`
	CauseID                        string `json:"cause_id" yaml:"cause_id"`
	TransactionType                string `json:"transaction_type" yaml:"transaction_type"`
	TransactionID                  string `json:"transaction_id" yaml:"transaction_id"`
	TotalTransactionAmount         string `json:"total_transaction_amount" yaml:"total_transaction_amount"`
	TransactionTaxDeductibleAmount string `json:"transaction_tax_deductible_amount" yaml:"transaction_tax_deductible_amount"`
	FeeBySupporter                 string `json:"fee_by_supporter" yaml:"fee_by_supporter"`
	ProcessingFee                  string `json:"processing_fee" yaml:"processing_fee"`
	TotalChargedAmount             string `json:"total_charged_amount" yaml:"total_charged_amount"`
	PaymentMethod                  string `json:"payment_method" yaml:"payment_method"`
	PostedAmount                   string `json:"posted_amount" yaml:"posted_amount"`
	BusinessOrganizationName       string `json:"business_organization_name" yaml:"business_organization_name"`
	FirstName                      string `json:"first_name" yaml:"first_name"`
	LastName                       string `json:"last_name" yaml:"last_name"`
	NetReceived                    string `json:"net_received" yaml:"net_received"`
	CampaignName                   string `json:"campaign_name" yaml:"campaign_name"`
	Email                          string `json:"email" yaml:"email"`
	City                           string `json:"city" yaml:"city"`
	State                          string `json:"state" yaml:"state"`
	Address                        string `json:"address" yaml:"address"`
	PostalCode                     string `json:"postal_code" yaml:"postal_code"`
	Country                        string `json:"country" yaml:"country"`
	PhoneNoType                    string `json:"phone_no_type" yaml:"phone_no_type"`
	CountryCode                    string `json:"country_code" yaml:"country_code"`
	PhoneNumber                    string `json:"phone_number" yaml:"phone_number"`
	WantToAnonymous                string `json:"want_to_anonymous" yaml:"want_to_anonymous"`
	IndividualOrBusiness           string `json:"individual_or_business" yaml:"individual_or_business"`
	SupportMessage                 string `json:"support_message" yaml:"support_message"`
	ContactID                      string `json:"contact_id" yaml:"contact_id"`
	TransactionDate                string `json:"transaction_date" yaml:"transaction_date"`
	SettlementDate                 string `json:"settlement_date" yaml:"settlement_date"`
	AssociatedActivityIDs          string `json:"associated_activity_IDs" yaml:"associated_activity_IDs"`
	CustomFieldStatus              string `json:"custom_field_status" yaml:"custom_field_status"`
}
