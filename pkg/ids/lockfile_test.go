package ids

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultLockfileConstant(t *testing.T) {
	if DefaultLockfile != ".mvpe.ids.lock" {
		t.Fatalf("unexpected default lockfile name %q", DefaultLockfile)
	}
}

func TestLoadNonExistentFileReturnsEmptyLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent.lock")

	lock, err := LoadLockfile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lock.Version != 1 {
		t.Fatalf("expected default version 1, got %d", lock.Version)
	}
	if len(lock.Services) != 0 || len(lock.Methods) != 0 || len(lock.Messages) != 0 {
		t.Fatalf("expected empty maps, got %+v", lock)
	}
	if len(lock.TombstoneServices) != 0 || len(lock.TombstoneMessages) != 0 || len(lock.TombstoneMethods) != 0 {
		t.Fatalf("expected empty tombstone sets, got %+v", lock)
	}
	if len(lock.AliasServices) != 0 || len(lock.AliasMessages) != 0 {
		t.Fatalf("expected empty alias maps, got %+v", lock)
	}
}

func TestLoadEmptyPathReturnsEmptyLock(t *testing.T) {
	lock, err := LoadLockfile("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lock.Version != 1 {
		t.Fatalf("expected version 1, got %d", lock.Version)
	}
}

func TestSaveAndLoadBasicData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.lock")

	lock := NewLock()
	lock.Version = 2
	lock.Services["TestService"] = 100
	lock.Methods["TestService.testMethod"] = 50
	lock.Messages["TestMessage"] = 200

	if err := SaveLockfile(lock, path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := LoadLockfile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Version != 2 {
		t.Fatalf("expected version 2, got %d", loaded.Version)
	}
	if loaded.Services["TestService"] != 100 {
		t.Fatalf("expected service id 100, got %d", loaded.Services["TestService"])
	}
	if loaded.Methods["TestService.testMethod"] != 50 {
		t.Fatalf("expected method id 50, got %d", loaded.Methods["TestService.testMethod"])
	}
	if loaded.Messages["TestMessage"] != 200 {
		t.Fatalf("expected message id 200, got %d", loaded.Messages["TestMessage"])
	}
}

func TestSaveAndLoadTombstones(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.lock")

	lock := NewLock()
	lock.TombstoneServices[10] = true
	lock.TombstoneServices[20] = true
	lock.TombstoneMessages[100] = true
	lock.TombstoneMessages[200] = true
	methodTombstones := lock.TombstonesForService("TestService")
	methodTombstones[5] = true
	methodTombstones[15] = true

	if err := SaveLockfile(lock, path); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := LoadLockfile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if !loaded.TombstoneServices[10] || !loaded.TombstoneServices[20] {
		t.Fatalf("expected tombstoned services 10 and 20, got %+v", loaded.TombstoneServices)
	}
	if !loaded.TombstoneMessages[100] || !loaded.TombstoneMessages[200] {
		t.Fatalf("expected tombstoned messages 100 and 200, got %+v", loaded.TombstoneMessages)
	}
	loadedMethodTombstones := loaded.TombstonesForService("TestService")
	if !loadedMethodTombstones[5] || !loadedMethodTombstones[15] {
		t.Fatalf("expected method tombstones 5 and 15, got %+v", loadedMethodTombstones)
	}
}

func TestSaveAndLoadAliases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.lock")

	lock := NewLock()
	lock.AliasServices["OldServiceName"] = "NewServiceName"
	lock.AliasMessages["OldMessageName"] = "NewMessageName"

	if err := SaveLockfile(lock, path); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := LoadLockfile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.AliasServices["OldServiceName"] != "NewServiceName" {
		t.Fatalf("expected alias NewServiceName, got %q", loaded.AliasServices["OldServiceName"])
	}
	if loaded.AliasMessages["OldMessageName"] != "NewMessageName" {
		t.Fatalf("expected alias NewMessageName, got %q", loaded.AliasMessages["OldMessageName"])
	}
}

func TestEscapingSpecialCharactersRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.lock")

	serviceName := "com.example.Service%Test"
	methodKey := qualifiedMethodName(serviceName, "method.with.dots")
	messageName := "com.example.Message%Test"

	lock := NewLock()
	lock.Services[serviceName] = 100
	lock.Methods[methodKey] = 50
	lock.Messages[messageName] = 200

	if err := SaveLockfile(lock, path); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := LoadLockfile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Services[serviceName] != 100 {
		t.Fatalf("expected service id 100, got %d", loaded.Services[serviceName])
	}
	if loaded.Methods[methodKey] != 50 {
		t.Fatalf("expected method id 50, got %d", loaded.Methods[methodKey])
	}
	if loaded.Messages[messageName] != 200 {
		t.Fatalf("expected message id 200, got %d", loaded.Messages[messageName])
	}
}

func TestEmptyTombstonesOmittedFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.lock")

	lock := NewLock()
	if err := SaveLockfile(lock, path); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := LoadLockfile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if len(loaded.TombstoneServices) != 0 || len(loaded.TombstoneMessages) != 0 || len(loaded.TombstoneMethods) != 0 {
		t.Fatalf("expected no tombstones, got %+v", loaded)
	}
}

func TestComplexLockfileStructureRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.lock")

	lock := NewLock()
	lock.Version = 3
	lock.Services["AccountService"] = 42
	lock.Services["PaymentService"] = 43
	lock.Services["UserService"] = 44
	lock.Methods["AccountService.GetBalance"] = 1
	lock.Methods["AccountService.TransferFunds"] = 2
	lock.Methods["PaymentService.ProcessPayment"] = 1
	lock.Methods["UserService.GetUser"] = 1
	lock.Messages["GetBalanceRequest"] = 101
	lock.Messages["GetBalanceResponse"] = 102
	lock.Messages["TransferFundsRequest"] = 103
	lock.Messages["TransferFundsResponse"] = 104
	lock.TombstoneServices[40] = true
	lock.TombstoneServices[41] = true
	lock.TombstoneMessages[99] = true
	lock.TombstoneMessages[100] = true
	lock.TombstonesForService("AccountService")[10] = true
	lock.TombstonesForService("PaymentService")[15] = true
	lock.AliasServices["Accounts"] = "AccountService"
	lock.AliasMessages["BalanceReq"] = "GetBalanceRequest"

	if err := SaveLockfile(lock, path); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := LoadLockfile(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Version != 3 {
		t.Fatalf("expected version 3, got %d", loaded.Version)
	}
	if loaded.Services["AccountService"] != 42 || loaded.Services["PaymentService"] != 43 || loaded.Services["UserService"] != 44 {
		t.Fatalf("service ids not preserved: %+v", loaded.Services)
	}
	if loaded.Methods["AccountService.GetBalance"] != 1 || loaded.Methods["AccountService.TransferFunds"] != 2 {
		t.Fatalf("method ids not preserved: %+v", loaded.Methods)
	}
	if loaded.Messages["GetBalanceRequest"] != 101 || loaded.Messages["TransferFundsResponse"] != 104 {
		t.Fatalf("message ids not preserved: %+v", loaded.Messages)
	}
	if !loaded.TombstoneServices[40] || !loaded.TombstoneServices[41] {
		t.Fatalf("service tombstones not preserved: %+v", loaded.TombstoneServices)
	}
	if !loaded.TombstonesForService("AccountService")[10] || !loaded.TombstonesForService("PaymentService")[15] {
		t.Fatalf("method tombstones not preserved")
	}
	if loaded.AliasServices["Accounts"] != "AccountService" || loaded.AliasMessages["BalanceReq"] != "GetBalanceRequest" {
		t.Fatalf("aliases not preserved: %+v %+v", loaded.AliasServices, loaded.AliasMessages)
	}
}

func TestSaveToEmptyPathIsNoOp(t *testing.T) {
	lock := NewLock()
	lock.Services["TestService"] = 100

	if err := SaveLockfile(lock, ""); err != nil {
		t.Fatalf("expected no error saving to empty path, got %v", err)
	}
}

func TestFileContentFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.lock")

	lock := NewLock()
	lock.Version = 2
	lock.Services["TestService"] = 100
	lock.Messages["TestMessage"] = 200
	lock.TombstoneServices[10] = true
	lock.TombstoneMessages[99] = true
	lock.AliasServices["OldName"] = "NewName"

	if err := SaveLockfile(lock, path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"version = 2",
		"services.TestService = 100",
		"messages.TestMessage = 200",
		"tombstones.services = 10",
		"tombstones.messages = 99",
		"aliases.services.OldName = NewName",
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected file to contain %q, got:\n%s", want, content)
		}
	}
}

func TestMultipleTombstonesAreSortedInOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.lock")

	lock := NewLock()
	lock.TombstoneServices[30] = true
	lock.TombstoneServices[10] = true
	lock.TombstoneServices[20] = true

	if err := SaveLockfile(lock, path); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	if !strings.Contains(string(data), "tombstones.services = 10,20,30") {
		t.Fatalf("expected sorted tombstone CSV, got:\n%s", string(data))
	}
}

func TestRoundTripConsistencyAcrossMultiplePasses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.lock")

	lock := NewLock()
	lock.Version = 5
	lock.Services["Service.With.Dots"] = 100
	lock.Services["Service%With%Percent"] = 200
	lock.Methods[qualifiedMethodName("Service.With.Dots", "method")] = 10
	lock.Messages["Message%With%Special.Chars"] = 300
	lock.TombstoneServices[1] = true
	lock.TombstoneServices[2] = true
	lock.TombstoneMessages[99] = true
	lock.TombstonesForService("Service.With.Dots")[5] = true
	lock.AliasServices["Old.Service"] = "New.Service"
	lock.AliasMessages["Old%Message"] = "New%Message"

	var err error
	for i := 0; i < 3; i++ {
		if err = SaveLockfile(lock, path); err != nil {
			t.Fatalf("save failed on pass %d: %v", i, err)
		}
		lock, err = LoadLockfile(path)
		if err != nil {
			t.Fatalf("load failed on pass %d: %v", i, err)
		}
	}

	if lock.Version != 5 {
		t.Fatalf("expected version 5, got %d", lock.Version)
	}
	if lock.Services["Service.With.Dots"] != 100 || lock.Services["Service%With%Percent"] != 200 {
		t.Fatalf("services not preserved: %+v", lock.Services)
	}
	if lock.Methods[qualifiedMethodName("Service.With.Dots", "method")] != 10 {
		t.Fatalf("method not preserved: %+v", lock.Methods)
	}
	if lock.Messages["Message%With%Special.Chars"] != 300 {
		t.Fatalf("message not preserved: %+v", lock.Messages)
	}
	if !lock.TombstoneServices[1] || !lock.TombstoneServices[2] || !lock.TombstoneMessages[99] {
		t.Fatalf("tombstones not preserved")
	}
	if !lock.TombstonesForService("Service.With.Dots")[5] {
		t.Fatalf("method tombstone not preserved")
	}
	if lock.AliasServices["Old.Service"] != "New.Service" || lock.AliasMessages["Old%Message"] != "New%Message" {
		t.Fatalf("aliases not preserved: %+v %+v", lock.AliasServices, lock.AliasMessages)
	}
}

func TestEscapeUnescapeRoundTrip(t *testing.T) {
	cases := []string{
		"Plain",
		"With.Dot",
		"With%Percent",
		"Both.And%Mixed.Name",
		"",
	}
	for _, s := range cases {
		if got := unescape(escape(s)); got != s {
			t.Fatalf("escape/unescape round trip failed for %q: got %q", s, got)
		}
	}
}
