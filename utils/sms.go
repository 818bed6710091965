package utils

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// SendSMS delivers a message through the Africa's Talking messaging API.
// Used for application status notifications; callers log failures and move on.
func SendSMS(apiKey, username, sender, phone, message string) error {
	endpoint := "https://api.africastalking.com/version1/messaging"

	form := url.Values{}
	form.Set("username", username)
	form.Set("to", "+254"+strings.TrimPrefix(phone, "0"))
	form.Set("message", message)
	if sender != "" {
		form.Set("from", sender)
	}

	req, _ := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	req.Header.Set("apiKey", apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 && resp.StatusCode != 201 {
		return fmt.Errorf("SMS gateway error: %v", resp.Status)
	}
	return nil
}
