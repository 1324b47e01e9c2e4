package payments

import (
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/account"
	"github.com/stripe/stripe-go/v79/accountlink"
	checkoutsession "github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/loginlink"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/barbera-app/barbera-api/internal/config"
)

const webhookTolerance = 300 * time.Second

// Client wraps the Stripe surface the API touches: Checkout sessions for
// paid bookings, webhook verification for fulfilment, Connect Express
// accounts for barber payouts.
type Client struct {
	webhookSecret string
	baseURL       string
}

func New(cfg *config.Config) *Client {
	stripe.Key = cfg.StripeSecretKey
	return &Client{
		webhookSecret: cfg.StripeWebhookSecret,
		baseURL:       cfg.BaseURL,
	}
}

// ======================================================
// CHECKOUT
// ======================================================

type CheckoutInput struct {
	ServiceName     string
	AmountCents     int64
	AppointmentTime time.Time

	BarberID   uint
	CustomerID uint
	ServiceID  uint

	// Payout destination for the barber's Connect account; empty means
	// the platform keeps the charge (barber not onboarded yet).
	ConnectAccountID string
}

func (c *Client) CreateCheckoutSession(in CheckoutInput) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(in.ServiceName),
						Description: stripe.String(fmt.Sprintf(
							"Appointment on %s",
							in.AppointmentTime.Format("Jan 2, 2006 at 3:04 PM"),
						)),
					},
					UnitAmount: stripe.Int64(in.AmountCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(c.baseURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(c.baseURL + "/discover"),
	}

	if in.ConnectAccountID != "" {
		params.PaymentIntentData = &stripe.CheckoutSessionPaymentIntentDataParams{
			TransferData: &stripe.CheckoutSessionPaymentIntentDataTransferDataParams{
				Destination: stripe.String(in.ConnectAccountID),
			},
		}
	}

	params.AddMetadata("barber_id", fmt.Sprint(in.BarberID))
	params.AddMetadata("customer_id", fmt.Sprint(in.CustomerID))
	params.AddMetadata("service_id", fmt.Sprint(in.ServiceID))
	params.AddMetadata("appointment_time", in.AppointmentTime.UTC().Format(time.RFC3339))

	return checkoutsession.New(params)
}

func (c *Client) GetCheckoutSession(id string) (*stripe.CheckoutSession, error) {
	return checkoutsession.Get(id, nil)
}

// ======================================================
// WEBHOOK
// ======================================================

func (c *Client) VerifyWebhook(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEventWithTolerance(payload, sigHeader, c.webhookSecret, webhookTolerance)
}

func (c *Client) WebhookConfigured() bool {
	return c.webhookSecret != ""
}

// ======================================================
// CONNECT
// ======================================================

// EnsureConnectAccount returns the existing Express account id or creates
// a fresh one when the barber has none yet.
func (c *Client) EnsureConnectAccount(existingID string) (string, error) {
	if existingID != "" {
		return existingID, nil
	}

	acct, err := account.New(&stripe.AccountParams{
		Type: stripe.String(string(stripe.AccountTypeExpress)),
	})
	if err != nil {
		return "", err
	}
	return acct.ID, nil
}

func (c *Client) OnboardingLink(accountID string) (string, error) {
	link, err := accountlink.New(&stripe.AccountLinkParams{
		Account:    stripe.String(accountID),
		RefreshURL: stripe.String(c.baseURL + "/account"),
		ReturnURL:  stripe.String(c.baseURL + "/stripe/return"),
		Type:       stripe.String("account_onboarding"),
	})
	if err != nil {
		return "", err
	}
	return link.URL, nil
}

func (c *Client) DashboardLink(accountID string) (string, error) {
	link, err := loginlink.New(&stripe.LoginLinkParams{
		Account: stripe.String(accountID),
	})
	if err != nil {
		return "", err
	}
	return link.URL, nil
}
