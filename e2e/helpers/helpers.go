package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MichalMitros/price-tracker/internal/notifier"
	"github.com/MichalMitros/price-tracker/internal/platform/models"
	"github.com/MichalMitros/price-tracker/internal/platform/storage"
	pgmodels "github.com/MichalMitros/price-tracker/internal/platform/storage/gen/postgres/public/model"
	"github.com/MichalMitros/price-tracker/internal/platform/storage/storagetesting"
	"github.com/MichalMitros/price-tracker/internal/scraper"
	"github.com/go-jet/jet/v2/qrm"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

const (
	contentType = "Content-Type"
	waitTimeout = 15 * time.Second
)

const priceOyePage = `<!DOCTYPE html>
<html>
<body>
  <div class="productBox">
    <a href="/mobiles/samsung/samsung-galaxy-s24">
      <img data-original="/images/s24.webp">
      <h4 class="p-title">Samsung Galaxy S24</h4>
    </a>
    <div class="p-price">Rs %s</div>
    <span class="rating">4.7 (40 reviews)</span>
  </div>
  <div class="productBox">
    <a href="/mobiles/google/pixel-8">
      <h4 class="p-title">Google Pixel 8</h4>
    </a>
    <div class="p-price">Rs 189,999</div>
    <span class="rating">4.5 (90 reviews)</span>
  </div>
</body>
</html>`

// StoresServer is fake Daraz and PriceOye search backend with adjustable prices.
type StoresServer struct {
	*httptest.Server
	darazPrice    atomic.Int64
	priceOyePrice atomic.Int64
}

// PrepareStoresServer is helper function for mocking stores search endpoints.
func PrepareStoresServer(t *testing.T, darazPrice, priceOyePrice int64) *StoresServer {
	t.Helper()

	srv := &StoresServer{}
	srv.darazPrice.Store(darazPrice)
	srv.priceOyePrice.Store(priceOyePrice)

	srv.Server = httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
		switch {
		case strings.HasPrefix(req.URL.Path, "/catalog"):
			wrt.Header().Add(contentType, "application/json; charset=utf-8")
			_, _ = wrt.Write(srv.darazCatalog())
		case strings.HasPrefix(req.URL.Path, "/search"):
			wrt.Header().Add(contentType, "text/html; charset=utf-8")
			_, _ = fmt.Fprintf(wrt, priceOyePage, groupThousands(srv.priceOyePrice.Load()))
		default:
			wrt.WriteHeader(http.StatusNotFound)
		}
	}))

	t.Cleanup(srv.Close)

	return srv
}

// SetDarazPrice changes price of Galaxy S24 in Daraz.
func (s *StoresServer) SetDarazPrice(p int64) {
	s.darazPrice.Store(p)
}

// Definitions returns Daraz and PriceOye definitions pointing to server.
func (s *StoresServer) Definitions() []scraper.Definition {
	definitions := lo.Filter(scraper.DefaultDefinitions(), func(d scraper.Definition, _ int) bool {
		return d.Name == "Daraz" || d.Name == "PriceOye"
	})

	return lo.Map(definitions, func(d scraper.Definition, _ int) scraper.Definition {
		return d.Rebase(s.URL)
	})
}

func (s *StoresServer) darazCatalog() []byte {
	catalog := map[string]any{
		"mods": map[string]any{
			"listItems": []map[string]any{
				{
					"name":        "Samsung Galaxy S24",
					"price":       fmt.Sprint(s.darazPrice.Load()),
					"itemUrl":     "/products/galaxy-s24-i100.html",
					"image":       "/p/s24.jpg",
					"ratingScore": "4.6",
					"review":      "128",
					"inStock":     true,
				},
			},
		},
	}

	body, _ := json.Marshal(catalog)
	return body
}

func groupThousands(p int64) string {
	return fmt.Sprintf("%d,%03d", p/1000, p%1000)
}

// WaitForAlert is blocking helper function, returns alert with id once matches is satisfied.
func WaitForAlert(
	t *testing.T,
	queryable qrm.Queryable,
	id string,
	matches func(alert *models.SmartAlert) bool,
) *models.SmartAlert {
	t.Helper()

	deadline := time.After(waitTimeout)
	for {
		select {
		case <-deadline:
			require.FailNow(t, "alert wasn't updated in time", id)
		case <-time.After(250 * time.Millisecond):
		}

		if alert := FindAlert(t, queryable, id); alert != nil && matches(alert) {
			return alert
		}
	}
}

// WaitForNewAlert is blocking helper function, returns first alert of user once it is stored.
func WaitForNewAlert(t *testing.T, queryable qrm.Queryable, userID string) *models.SmartAlert {
	t.Helper()

	deadline := time.After(waitTimeout)
	for {
		select {
		case <-deadline:
			require.FailNow(t, "alert wasn't created in time", userID)
		case <-time.After(250 * time.Millisecond):
		}

		for _, dbAlert := range storagetesting.GetSmartAlerts(t, queryable) {
			if dbAlert.UserID == userID {
				return fromDBAlert(t, dbAlert)
			}
		}
	}
}

// WaitForAlertDeletion is blocking helper function which waits until alert with id doesn't exist.
func WaitForAlertDeletion(t *testing.T, queryable qrm.Queryable, id string) {
	t.Helper()

	deadline := time.After(waitTimeout)
	for {
		select {
		case <-deadline:
			require.FailNow(t, "alert wasn't deleted in time", id)
		case <-time.After(250 * time.Millisecond):
		}

		if FindAlert(t, queryable, id) == nil {
			return
		}
	}
}

// FindAlert returns stored alert with id or nil when it doesn't exist.
func FindAlert(t *testing.T, queryable qrm.Queryable, id string) *models.SmartAlert {
	t.Helper()

	for _, dbAlert := range storagetesting.GetSmartAlerts(t, queryable) {
		if dbAlert.ID == id {
			return fromDBAlert(t, dbAlert)
		}
	}

	return nil
}

func fromDBAlert(t *testing.T, dbAlert pgmodels.SmartAlert) *models.SmartAlert {
	t.Helper()

	alert, err := storage.FromDBSmartAlert(&dbAlert)
	require.NoError(t, err, "can't convert stored alert")

	return alert
}

// WaitForEvent is blocking helper function, returns next alert triggered event.
func WaitForEvent(t *testing.T, events <-chan amqp.Delivery) notifier.AlertTriggeredEvent {
	t.Helper()

	select {
	case delivery := <-events:
		var event notifier.AlertTriggeredEvent
		require.NoError(t, json.Unmarshal(delivery.Body, &event), "can't decode alert triggered event")
		return event
	case <-time.After(waitTimeout):
		require.FailNow(t, "alert triggered event wasn't published in time")
	}

	return notifier.AlertTriggeredEvent{}
}

// DeclareRMQExchange is helper function for declaring RMQ exchange.
func DeclareRMQExchange(t *testing.T, ch *amqp.Channel, exchange string) {
	t.Helper()

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		require.FailNow(t, "can't declare exchange", exchange, err)
	}
}

// DeclareRMQQueue is helper function for declaring RMQ queue and binding and cleaning them after test is finished.
func DeclareRMQQueue(t *testing.T, channel *amqp.Channel, queueName, exchange, routingKey string) {
	t.Helper()

	_, err := channel.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		require.FailNow(t, "can't declare queue", queueName, err)
	}

	err = channel.QueueBind(queueName, routingKey, exchange, false, nil)
	if err != nil {
		require.FailNow(t, "can't bind queue", queueName, routingKey, err)
	}

	t.Cleanup(func() {
		_, err := channel.QueueDelete(queueName, false, false, true)
		if err != nil {
			require.FailNow(t, "can't delete queue", queueName, err)
		}
	})
}
