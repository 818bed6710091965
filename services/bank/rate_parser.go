package services

import (
	"fmt"
	"net/http"
	"strings"

	"pesaswift/models"
	"pesaswift/utils"

	"github.com/PuerkitoBio/goquery"
)

type RateParser struct{}

func NewRateParser() *RateParser {
	return &RateParser{}
}

func (rp *RateParser) ParseURL(url string) ([]*models.BankRate, error) {
	client := &http.Client{}
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %v", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %v", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %v", err)
	}

	return rp.ParseRatesWithGoquery(doc), nil
}

// ParseRatesWithGoquery extracts the lender comparison rows from the rates
// page markup.
func (rp *RateParser) ParseRatesWithGoquery(doc *goquery.Document) []*models.BankRate {
	var rates []*models.BankRate

	doc.Find(".lender-offer-row").Each(func(i int, s *goquery.Selection) {
		rate := &models.BankRate{
			CreatedAt: utils.NairobiTime(),
		}

		rate.BankName = strings.TrimSpace(s.Find(".lender-name").First().Text())
		rate.Product = strings.TrimSpace(s.Find(".lender-product a").First().Text())

		if link := s.Find(".lender-product a").First(); link.Length() > 0 {
			if href, exists := link.Attr("href"); exists {
				rate.URL = strings.TrimSpace(href)
			}
		}

		rate.DailyRate = utils.ExtractFirstFloat(s.Find(".lender-rate").First().Text())
		rate.MaxAmount = utils.ExtractMaxAmount(s.Find(".lender-amount").First().Text())
		rate.Term = strings.TrimSpace(s.Find(".lender-term").First().Text())

		if rate.BankName != "" {
			rates = append(rates, rate)
		}
	})

	fmt.Printf("Parsed lender rates: %d\n", len(rates))
	return rates
}
