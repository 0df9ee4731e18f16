package background

import (
	"context"
	"log"
	"time"

	"menuboard/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler runs periodic maintenance jobs. The only scheduled job is
// the orphan-image sweep: the write workflows can leave blobs behind (failed
// finalize steps, swallowed old-image deletes), and the sweep reports them
// for manual reconciliation. It never deletes anything itself.
type JobScheduler struct {
	scheduler  gocron.Scheduler
	menuSvc    services.MenuService
	storageSvc services.StorageService
	bucket     string
}

func NewJobScheduler(menuSvc services.MenuService, storageSvc services.StorageService, bucket string) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:  scheduler,
		menuSvc:    menuSvc,
		storageSvc: storageSvc,
		bucket:     bucket,
	}
	js.registerJobs()
	return js, nil
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	_, err := js.scheduler.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(js.sweepOrphanImages, context.Background()),
		gocron.WithName("orphan-image-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create orphan-image sweep job: %v", err)
	}
}

// sweepOrphanImages diffs stored object keys against every image URL the
// documents reference and logs the unreferenced keys.
func (js *JobScheduler) sweepOrphanImages(ctx context.Context) {
	keys, err := js.storageSvc.ListImageKeys(ctx)
	if err != nil {
		log.Printf("WARN: orphan-image sweep: listing objects failed: %v", err)
		return
	}

	categories, err := js.menuSvc.ListCategories(ctx)
	if err != nil {
		log.Printf("WARN: orphan-image sweep: listing categories failed: %v", err)
		return
	}

	referenced := make(map[string]bool)
	addRef := func(imageURL string) {
		if imageURL == "" {
			return
		}
		key, err := services.ObjectKeyFromURL(imageURL, js.bucket)
		if err != nil {
			log.Printf("WARN: orphan-image sweep: unparsable image url %s", imageURL)
			return
		}
		referenced[key] = true
	}
	for _, category := range categories {
		addRef(category.MainImage)
		for _, item := range category.Items {
			addRef(item.Image)
		}
	}

	orphans := 0
	for _, key := range keys {
		if !referenced[key] {
			orphans++
			log.Printf("WARN: orphan image blob: %s", key)
		}
	}
	log.Printf("Orphan-image sweep done: %d objects, %d referenced, %d orphans", len(keys), len(referenced), orphans)
}
