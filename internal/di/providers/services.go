package providers

import (
	"github.com/samber/do/v2"

	"github.com/linkhive/linkhive-server/internal/logger"
	"github.com/linkhive/linkhive-server/internal/service"
	"github.com/linkhive/linkhive-server/internal/validation"
)

// ProvideBookmarkService provides the bookmark service.
func ProvideBookmarkService(i do.Injector) (*service.BookmarkService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBookmarkService(storeHandle.Store, validator, log.Logger), nil
}

// ProvideTagService provides the tag service.
func ProvideTagService(i do.Injector) (*service.TagService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTagService(storeHandle.Store, log.Logger), nil
}

// ProvideTransferService provides the import/export service.
func ProvideTransferService(i do.Injector) (*service.TransferService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTransferService(storeHandle.Store, log.Logger), nil
}
