package container

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/vidtube/config"
)

func TestProvide_RejectsIncompleteInfra(t *testing.T) {
	err := Provide(Infra{Config: &config.Config{}, Logger: logrus.New()})
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, want := range []string{"postgres pool", "asset store", "jwt manager"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
	if GetConfig() != nil {
		t.Fatal("rejected infra must not be installed")
	}
}
