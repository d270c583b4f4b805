package holidayapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// Client клиент для работы с Nager.Date API
type Client struct {
	baseURL     string
	countryCode string
	httpClient  *http.Client
	log         Logger

	mu    sync.RWMutex
	cache map[int]map[string]struct{} // год -> множество дат YYYY-MM-DD
}

// NewClient создает новый экземпляр клиента Nager.Date
func NewClient(baseURL, countryCode string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:     baseURL,
		countryCode: countryCode,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:   log,
		cache: make(map[int]map[string]struct{}),
	}
}

// GetPublicHolidays получает список праздников страны за год
func (c *Client) GetPublicHolidays(ctx context.Context, year int) ([]PublicHoliday, error) {
	url := fmt.Sprintf("%s/api/v3/PublicHolidays/%d/%s", c.baseURL, year, c.countryCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var holidays []PublicHoliday
	if err := json.NewDecoder(resp.Body).Decode(&holidays); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return holidays, nil
}

// IsHoliday проверяет, является ли дата государственным праздником.
// При недоступности Nager.Date применяется graceful degradation: используется
// статический список праздников, поэтому метод никогда не возвращает ошибку
func (c *Client) IsHoliday(ctx context.Context, date time.Time) bool {
	year := date.Year()
	key := date.Format("2006-01-02")

	c.mu.RLock()
	dates, ok := c.cache[year]
	c.mu.RUnlock()
	if ok {
		_, hit := dates[key]
		return hit
	}

	holidays, err := c.GetPublicHolidays(ctx, year)
	if err != nil {
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("Nager.Date unavailable, falling back to static holiday list for year=%d: %v", year, err)
		_, hit := staticHolidays(c.countryCode)[key[5:]]
		return hit
	}

	dates = make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		dates[h.Date] = struct{}{}
	}

	c.mu.Lock()
	c.cache[year] = dates
	c.mu.Unlock()

	c.log.Info("Loaded %d public holidays for year=%d country=%s", len(holidays), year, c.countryCode)

	_, hit := dates[key]
	return hit
}

// staticHolidays возвращает фиксированные даты праздников (MM-DD) для страны.
// Список покрывает только национальные праздники с фиксированной датой;
// религиозные праздники с плавающей датой без API определить нельзя
func staticHolidays(countryCode string) map[string]struct{} {
	switch countryCode {
	case "TR":
		return map[string]struct{}{
			"01-01": {}, // Yılbaşı
			"04-23": {}, // Ulusal Egemenlik ve Çocuk Bayramı
			"05-01": {}, // Emek ve Dayanışma Günü
			"05-19": {}, // Atatürk'ü Anma, Gençlik ve Spor Bayramı
			"07-15": {}, // Demokrasi ve Millî Birlik Günü
			"08-30": {}, // Zafer Bayramı
			"10-29": {}, // Cumhuriyet Bayramı
		}
	default:
		return map[string]struct{}{}
	}
}
