package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yukikurage/portal-api/internal/clients"
	"github.com/yukikurage/portal-api/internal/logging"
	"github.com/yukikurage/portal-api/internal/models"
	"github.com/yukikurage/portal-api/internal/utils"
)

// DocumentStore is the part of the document index the README sync needs
type DocumentStore interface {
	Upload(ctx context.Context, files []clients.UploadFile) (*clients.Relay, error)
	BuildIndex(ctx context.Context) (*clients.Relay, error)
	DeleteDocument(ctx context.Context, filename string) (*clients.Relay, error)
}

// ReadmeSync mirrors each project's informacion text into the document index as
// readme-project-<slug>.md. It is best effort: nothing is retried and failures are only logged.
type ReadmeSync struct {
	docs DocumentStore
}

func NewReadmeSync(docs DocumentStore) *ReadmeSync {
	return &ReadmeSync{docs: docs}
}

func (r *ReadmeSync) logger(project *models.Project, filename string) *logrus.Entry {
	return logging.Logger.WithFields(logrus.Fields{
		"project_id": project.ID,
		"filename":   filename,
	})
}

// ProjectSaved uploads the README and rebuilds the index once the upload is accepted
func (r *ReadmeSync) ProjectSaved(ctx context.Context, project *models.Project) {
	filename := utils.ReadmeFilename(project.Name)
	log := r.logger(project, filename)

	if strings.TrimSpace(project.Informacion) == "" {
		log.Debug("Project has no README to sync")
		return
	}

	upload, err := r.docs.Upload(ctx, []clients.UploadFile{
		{Name: filename, Content: strings.NewReader(project.Informacion)},
	})
	if err != nil {
		log.WithError(err).Error("Failed to upload project README")
		return
	}
	if !upload.OK() {
		log.WithField("status", upload.StatusCode).Warn("Document index rejected project README")
		return
	}

	r.rebuild(ctx, log)
}

// ProjectDeleting removes the README and rebuilds the index, whatever the removal returned
func (r *ReadmeSync) ProjectDeleting(ctx context.Context, project *models.Project) {
	filename := utils.ReadmeFilename(project.Name)
	log := r.logger(project, filename)

	relay, err := r.docs.DeleteDocument(ctx, filename)
	switch {
	case err != nil:
		log.WithError(err).Error("Failed to delete project README")
	case !relay.OK():
		log.WithField("status", relay.StatusCode).Warn("Document index did not delete project README")
	}

	r.rebuild(ctx, log)
}

func (r *ReadmeSync) rebuild(ctx context.Context, log *logrus.Entry) {
	relay, err := r.docs.BuildIndex(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to rebuild document index")
		return
	}
	if !relay.OK() {
		log.WithField("status", relay.StatusCode).Warn("Document index rebuild failed")
		return
	}
	log.Info("Document index rebuilt")
}
