package e2e

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cucumber/godog"
)

// testDocument is the CNH field set every scenario submits. The CPF matches
// the default access list of the local setup.
var testDocument = map[string]string{
	"nome":           "MARIA DA SILVA",
	"cpf":            "222.222.222-22",
	"numeroCNH":      "98765432100",
	"dataNascimento": "15/05/1990",
	"dataEmissao":    "10/03/2022",
	"dataValidade":   "10/03/2032",
	"categoria":      "AB",
	"uf":             "SP",
}

// RegisterSteps registers all step definitions.
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	ctx.Step(`^the credential service is running$`, tc.serviceIsRunning)

	ctx.Step(`^I generate credentials for fields "([^"]*)"$`, tc.generateCredentials)
	ctx.Step(`^I generate credentials for fields "([^"]*)" without a token$`, tc.generateWithoutToken)
	ctx.Step(`^I save the first credential of the bundle$`, tc.saveFirstCredential)
	ctx.Step(`^I verify the saved credential$`, tc.verifySavedCredential)
	ctx.Step(`^I change the saved credential's subject claim "([^"]*)" to "([^"]*)"$`, tc.tamperSubjectClaim)
	ctx.Step(`^I retrieve the latest credential for field "([^"]*)"$`, tc.retrieveLatest)
	ctx.Step(`^I request the QR code for field "([^"]*)"$`, tc.requestQR)

	ctx.Step(`^the response status should be (\d+)$`, tc.responseStatusShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, tc.responseShouldContain)
	ctx.Step(`^the bundle should contain (\d+) credentials?$`, tc.bundleShouldContain)
	ctx.Step(`^the verdict should be valid$`, tc.verdictShouldBeValid)
	ctx.Step(`^the verdict should be invalid with reason "([^"]*)"$`, tc.verdictShouldBeInvalid)
	ctx.Step(`^the response content type should be "([^"]*)"$`, tc.contentTypeShouldBe)
}

func (tc *TestContext) serviceIsRunning() error {
	if err := tc.GET("/healthz", nil); err != nil {
		return err
	}
	if tc.LastResponse.StatusCode != 200 {
		return fmt.Errorf("health check returned %d", tc.LastResponse.StatusCode)
	}
	return nil
}

func (tc *TestContext) generateCredentials(fields string) error {
	return tc.POSTWithHeaders("/credentials/generate", map[string]any{
		"walletAddress": tc.Wallet,
		"document":      testDocument,
		"fields":        strings.Split(fields, ","),
	}, tc.authHeader())
}

func (tc *TestContext) generateWithoutToken(fields string) error {
	return tc.POST("/credentials/generate", map[string]any{
		"walletAddress": tc.Wallet,
		"document":      testDocument,
		"fields":        strings.Split(fields, ","),
	})
}

func (tc *TestContext) saveFirstCredential() error {
	var result struct {
		Bundle struct {
			FieldProofs []map[string]any `json:"fieldProofs"`
		} `json:"bundle"`
	}
	if err := json.Unmarshal(tc.LastResponseBody, &result); err != nil {
		return fmt.Errorf("last response is not a generation result: %w", err)
	}
	if len(result.Bundle.FieldProofs) == 0 {
		return fmt.Errorf("bundle has no credentials to save")
	}
	tc.SavedCredential = result.Bundle.FieldProofs[0]
	return nil
}

func (tc *TestContext) verifySavedCredential() error {
	if tc.SavedCredential == nil {
		return fmt.Errorf("no credential saved")
	}
	return tc.POST("/credentials/verify", map[string]any{
		"credential": tc.SavedCredential,
	})
}

func (tc *TestContext) tamperSubjectClaim(claim, value string) error {
	if tc.SavedCredential == nil {
		return fmt.Errorf("no credential saved")
	}
	doc, ok := tc.SavedCredential["credential"].(map[string]any)
	if !ok {
		return fmt.Errorf("saved credential has no document")
	}
	subject, ok := doc["credentialSubject"].(map[string]any)
	if !ok {
		return fmt.Errorf("saved credential has no credentialSubject")
	}
	subject[claim] = value
	return nil
}

func (tc *TestContext) retrieveLatest(field string) error {
	return tc.GET("/credentials/"+tc.Wallet+"/"+field, nil)
}

func (tc *TestContext) requestQR(field string) error {
	return tc.GET("/credentials/"+tc.Wallet+"/"+field+"/qr", nil)
}

func (tc *TestContext) responseStatusShouldBe(status int) error {
	if tc.LastResponse == nil {
		return fmt.Errorf("no response recorded")
	}
	if tc.LastResponse.StatusCode != status {
		return fmt.Errorf("expected status %d, got %d: %s", status, tc.LastResponse.StatusCode, string(tc.LastResponseBody))
	}
	return nil
}

func (tc *TestContext) responseShouldContain(substr string) error {
	if !strings.Contains(string(tc.LastResponseBody), substr) {
		return fmt.Errorf("response does not contain %q: %s", substr, string(tc.LastResponseBody))
	}
	return nil
}

func (tc *TestContext) bundleShouldContain(count int) error {
	var result struct {
		Bundle struct {
			FieldProofs []json.RawMessage `json:"fieldProofs"`
		} `json:"bundle"`
	}
	if err := json.Unmarshal(tc.LastResponseBody, &result); err != nil {
		return fmt.Errorf("last response is not a generation result: %w", err)
	}
	if len(result.Bundle.FieldProofs) != count {
		return fmt.Errorf("expected %d credentials in bundle, got %d", count, len(result.Bundle.FieldProofs))
	}
	return nil
}

func (tc *TestContext) verdictShouldBeValid() error {
	valid, err := tc.ResponseField("isValid")
	if err != nil {
		return err
	}
	if valid != true {
		reason, _ := tc.ResponseField("reason")
		return fmt.Errorf("expected valid verdict, got invalid: %v", reason)
	}
	return nil
}

func (tc *TestContext) verdictShouldBeInvalid(reason string) error {
	valid, err := tc.ResponseField("isValid")
	if err != nil {
		return err
	}
	if valid != false {
		return fmt.Errorf("expected invalid verdict, got valid")
	}
	got, err := tc.ResponseField("reason")
	if err != nil {
		return err
	}
	if got != reason {
		return fmt.Errorf("expected reason %q, got %q", reason, got)
	}
	return nil
}

func (tc *TestContext) contentTypeShouldBe(ct string) error {
	got := tc.LastResponse.Header.Get("Content-Type")
	if got != ct {
		return fmt.Errorf("expected content type %q, got %q", ct, got)
	}
	return nil
}
