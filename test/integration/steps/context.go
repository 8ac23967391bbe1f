// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/trip-logbook/backend/config"
	"github.com/trip-logbook/backend/internal/infra/dependency"
	"github.com/trip-logbook/backend/internal/integration/persistence/model"
	"github.com/trip-logbook/backend/internal/integration/queue"
	"github.com/trip-logbook/backend/test/integration/mock"
)

const (
	testJWTSecret    = "test-jwt-secret-key-for-testing-purposes"
	testQueueKey     = "trip-logbook:test:recompute"
	defaultPassword  = "Str0ngPass!2024"
	resendEmailsPath = "/emails"
)

// app is the application under test. It is built once per suite and every
// scenario starts from an empty database, queue and mail inbox.
type app struct {
	once     sync.Once
	err      error
	server   *httptest.Server
	injector *dependency.Injector
	db       *mock.Db
	redis    *redis.Client
	queue    *queue.RedisQueue
	clock    *mock.Time
	mailer   *mock.ApiMock
}

var application app

type testContext struct {
	app      *app
	client   *http.Client
	headers  map[string]string
	response *response

	accessToken string
	users       map[string]*testUser
	vars        map[string]string
}

type testUser struct {
	id          uuid.UUID
	username    string
	email       string
	accessToken string
}

type response struct {
	status int
	body   any
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})

	ctx.AfterSuite(func() {
		if application.server != nil {
			application.server.Close()
		}
		if application.injector != nil {
			_ = application.injector.Close()
		}
		mock.CloseRedis()
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		app:    &application,
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the current time is "([^"]*)"$`, test.theCurrentTimeIs)

	// User steps
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^the user "([^"]*)" has the role "([^"]*)"$`, test.theUserHasTheRole)
	ctx.Given(`^I am not logged in$`, test.iAmNotLoggedIn)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.Step(`^I save the response field "([^"]*)" as "([^"]*)"$`, test.iSaveTheResponseFieldAs)

	// Background processing steps
	ctx.When(`^the recompute workers drain the queue$`, test.theRecomputeWorkersDrainTheQueue)
	ctx.When(`^the scheduled job "([^"]*)" runs$`, test.theScheduledJobRuns)
	ctx.When(`^the pending emails are delivered$`, test.thePendingEmailsAreDelivered)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should not exist$`, test.theResponseFieldShouldNotExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
	ctx.Then(`^the recompute queue should hold (\d+) tasks?$`, test.theRecomputeQueueShouldHoldTasks)

	// Mail provider assertion steps
	ctx.Then(`^the mail provider should have received (\d+) emails?$`, test.theMailProviderShouldHaveReceivedEmails)
	ctx.Then(`^the mail provider email (\d+) should be sent to "([^"]*)" with subject "([^"]*)"$`, test.theMailProviderEmailShouldBeSentToWithSubject)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.users = make(map[string]*testUser)
	t.vars = make(map[string]string)

	if t.app.server == nil {
		return nil
	}

	t.app.clock.Reset()
	t.app.mailer.ClearResponses("POST", resendEmailsPath)
	t.app.mailer.SetResponse(-1, "POST", resendEmailsPath, http.StatusOK, map[string]any{"id": uuid.NewString()})

	if err := t.app.db.ClearDB(); err != nil {
		return fmt.Errorf("failed to clear database: %w", err)
	}
	return mock.ClearRedis(t.app.redis)
}

func (t *testContext) theAPIServerIsRunning() error {
	t.app.once.Do(func() {
		t.app.err = t.app.start()
	})
	if t.app.err != nil {
		return fmt.Errorf("failed to start the API server: %w", t.app.err)
	}
	return nil
}

func (a *app) start() error {
	a.mailer = mock.NewApiServer()
	a.mailer.Start()
	a.mailer.SetResponse(-1, "POST", resendEmailsPath, http.StatusOK, map[string]any{"id": uuid.NewString()})

	_ = os.Setenv("ENV", "test")
	_ = os.Setenv("JWT_SECRET", testJWTSecret)
	_ = os.Setenv("RESEND_API_KEY", "re_test_key")
	_ = os.Setenv("RESEND_BASE_URL", a.mailer.GetUrl())
	_ = os.Setenv("QUEUE_BACKEND", queue.BackendRedis)
	_ = os.Setenv("QUEUE_REDIS_KEY", testQueueKey)
	_ = os.Setenv("SCHEDULER_TIMEZONE", "UTC")
	_ = os.Setenv("WORKER_ENABLED", "false")
	_ = os.Setenv("EMAIL_WORKER_ENABLED", "false")
	_ = os.Setenv("SCHEDULER_ENABLED", "false")

	a.db = mock.NewDb(model.AllModels()...)
	a.redis = mock.NewRedis()
	a.queue = queue.NewRedisQueue(a.redis, testQueueKey)
	a.clock = mock.NewTime()

	injector, err := dependency.NewInjector(config.Load(), a.db.DbConn, dependency.Options{
		Clock:       a.clock,
		RedisClient: a.redis,
		Queue:       a.queue,
	})
	if err != nil {
		return err
	}
	a.injector = injector
	a.server = httptest.NewServer(injector.Router.Setup("test"))

	for i := 0; i < 50; i++ {
		resp, err := http.Get(a.server.URL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("health check never succeeded")
}

func (t *testContext) theCurrentTimeIs(value string) error {
	at, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", value, err)
	}
	t.app.clock.SetCurrentTime(at)
	return nil
}
