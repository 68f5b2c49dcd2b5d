// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	documentsfeature "github.com/dalemusser/sitedesk/internal/app/features/documents"
	expensesfeature "github.com/dalemusser/sitedesk/internal/app/features/expenses"
	healthfeature "github.com/dalemusser/sitedesk/internal/app/features/health"
	organizationsfeature "github.com/dalemusser/sitedesk/internal/app/features/organizations"
	partiesfeature "github.com/dalemusser/sitedesk/internal/app/features/parties"
	projectsfeature "github.com/dalemusser/sitedesk/internal/app/features/projects"
	rolesfeature "github.com/dalemusser/sitedesk/internal/app/features/roles"
	stagesfeature "github.com/dalemusser/sitedesk/internal/app/features/stages"
	tasksfeature "github.com/dalemusser/sitedesk/internal/app/features/tasks"
	teammembersfeature "github.com/dalemusser/sitedesk/internal/app/features/teammembers"
	transactionsfeature "github.com/dalemusser/sitedesk/internal/app/features/transactions"
	usersfeature "github.com/dalemusser/sitedesk/internal/app/features/users"
	verifyfeature "github.com/dalemusser/sitedesk/internal/app/features/verify"
	"github.com/dalemusser/sitedesk/internal/app/store/phoneverify"
	"github.com/dalemusser/sitedesk/internal/app/system/sms"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE
// app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. SiteDesk mounts a JSON feature
// router per entity plus the verification and health endpoints. Document
// routes addressed by project live inside the projects subtree so the
// project id stays a path parameter.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.SiteDeskMongoDatabase

	store, err := buildStorage(appCfg)
	if err != nil {
		logger.Error("storage init failed", zap.Error(err))
		return nil, err
	}

	sender, err := sms.FromConfig(appCfg.SMSProvider, logger)
	if err != nil {
		logger.Error("sms init failed", zap.Error(err))
		return nil, err
	}

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.SiteDeskMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	usersHandler := usersfeature.NewHandler(db, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler))

	orgHandler := organizationsfeature.NewHandler(db, logger)
	r.Mount("/organizations", organizationsfeature.Routes(orgHandler))

	rolesHandler := rolesfeature.NewHandler(db, logger)
	r.Mount("/roles", rolesfeature.Routes(rolesHandler))

	teamHandler := teammembersfeature.NewHandler(db, logger)
	r.Mount("/team-members", teammembersfeature.Routes(teamHandler))

	docHandler := documentsfeature.NewHandler(db, store, logger)

	projectsHandler := projectsfeature.NewHandler(db, logger)
	projectsRouter := projectsfeature.Routes(projectsHandler)
	projectsRouter.Mount("/{id}/documents", documentsfeature.ProjectRoutes(docHandler))
	r.Mount("/projects", projectsRouter)

	r.Mount("/documents", documentsfeature.Routes(docHandler))

	partiesHandler := partiesfeature.NewHandler(db, logger)
	r.Mount("/parties", partiesfeature.Routes(partiesHandler))

	txnHandler := transactionsfeature.NewHandler(db, logger)
	r.Mount("/transactions", transactionsfeature.Routes(txnHandler))

	stagesHandler := stagesfeature.NewHandler(db, logger)
	r.Mount("/stages", stagesfeature.Routes(stagesHandler))

	tasksHandler := tasksfeature.NewHandler(db, logger)
	r.Mount("/tasks", tasksfeature.Routes(tasksHandler))

	expensesHandler := expensesfeature.NewHandler(db, logger)
	r.Mount("/expenses", expensesfeature.Routes(expensesHandler))

	codes := phoneverify.New(db, appCfg.VerifyExpiry)
	verifyHandler := verifyfeature.NewHandler(db, codes, sender, logger)
	r.Mount("/verify", verifyfeature.Routes(verifyHandler))

	return r, nil
}

// buildStorage constructs the document storage backend from config.
func buildStorage(appCfg AppConfig) (storage.Store, error) {
	switch appCfg.StorageType {
	case "local":
		return storage.NewLocal(storage.LocalConfig{
			BasePath: appCfg.StorageLocalPath,
			BaseURL:  appCfg.StorageLocalURL,
		})
	case "s3":
		return storage.NewS3(context.Background(), storage.S3Config{
			Region: appCfg.StorageS3Region,
			Bucket: appCfg.StorageS3Bucket,
			Prefix: appCfg.StorageS3Prefix,
		})
	default:
		return nil, fmt.Errorf("unknown storage type %q", appCfg.StorageType)
	}
}
