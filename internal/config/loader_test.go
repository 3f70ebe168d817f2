package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given a classifier URL and the memory store in the environment", t, func() {
		t.Setenv("TUKERANK_CLASSIFIER_URL", "http://model.local/predict")
		t.Setenv("TUKERANK_STORE_DRIVER", "memory")
		t.Setenv("TUKERANK_CONFIG", "")

		Convey("When loading without a file", func() {
			cfg, err := Load(context.Background())

			Convey("Then defaults fill the rest", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":8080")
				So(cfg.DBName, ShouldEqual, "tukerank")
				So(cfg.UsersCollection, ShouldEqual, "users")
				So(cfg.FeedbacksCollection, ShouldEqual, "feedbacks")
				So(cfg.MaxInputRunes, ShouldEqual, 512)
				So(cfg.RatingRetries, ShouldEqual, 5)
				So(cfg.CORSOrigins, ShouldResemble, []string{"*"})
				So(cfg.ClassifierURL, ShouldEqual, "http://model.local/predict")
			})
		})

		Convey("When a YAML file and env both set a key", func() {
			path := filepath.Join(t.TempDir(), "tukerank.yaml")
			body := "addr: \":9000\"\nmax_input_runes: 128\nseed_users:\n  - alice\n  - bob\n"
			So(os.WriteFile(path, []byte(body), 0o600), ShouldBeNil)
			t.Setenv("TUKERANK_CONFIG", path)
			t.Setenv("TUKERANK_MAX_INPUT_RUNES", "256")

			cfg, err := Load(context.Background())

			Convey("Then env wins over the file and the file over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9000")
				So(cfg.MaxInputRunes, ShouldEqual, 256)
				So(cfg.SeedUsers, ShouldResemble, []string{"alice", "bob"})
			})
		})

		Convey("When the config file does not exist", func() {
			t.Setenv("TUKERANK_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
			_, err := Load(context.Background())

			Convey("Then a load error is returned", func() {
				So(errors.Is(err, ErrLoadConfig), ShouldBeTrue)
			})
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Given a valid memory-store config", t, func() {
		cfg := New()
		cfg.StoreDriver = DriverMemory
		cfg.ClassifierURL = "http://model.local"
		So(cfg.Validate(), ShouldBeNil)

		cases := []struct {
			name   string
			mutate func(*Config)
		}{
			{"empty addr", func(c *Config) { c.Addr = "" }},
			{"unknown driver", func(c *Config) { c.StoreDriver = "postgres" }},
			{"mongo without uri", func(c *Config) { c.StoreDriver = DriverMongo }},
			{"no classifier", func(c *Config) { c.ClassifierURL = "" }},
			{"zero input bound", func(c *Config) { c.MaxInputRunes = 0 }},
			{"zero retries", func(c *Config) { c.RatingRetries = 0 }},
			{"resend without sender", func(c *Config) { c.ResendAPIKey = "re_123" }},
		}
		for _, tc := range cases {
			Convey("When "+tc.name, func() {
				tc.mutate(cfg)
				So(errors.Is(cfg.Validate(), ErrInvalidConfig), ShouldBeTrue)
			})
		}
	})
}
