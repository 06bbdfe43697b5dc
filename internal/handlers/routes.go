package handlers

import "github.com/gofiber/fiber/v2"

type Set struct {
	Users  *UsersHandler
	Groups *GroupsHandler
	Files  *FilesHandler
}

// Mount registers every API route on app.
func Mount(app *fiber.App, h Set) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	userRoutes := api.Group("/users")
	userRoutes.Post("/add", h.Users.Add)
	userRoutes.Put("/update", h.Users.Update)
	userRoutes.Delete("/delete/:id", h.Users.Delete)
	userRoutes.Get("/viewall", h.Users.List)
	userRoutes.Get("/view/:id", h.Users.Get)
	userRoutes.Post("/login", h.Users.Login)
	userRoutes.Put("/file/favourite/:fileId/:isFavourite", h.Users.SetFavourite)
	userRoutes.Get("/file/favourites/:username", h.Users.ListFavourites)

	groupRoutes := api.Group("/groups")
	groupRoutes.Post("/create", h.Groups.Create)
	groupRoutes.Post("/join/:groupId", h.Groups.Join)
	groupRoutes.Post("/leave/:groupId", h.Groups.Leave)
	groupRoutes.Get("/user/:username", h.Groups.ListForUser)
	groupRoutes.Post("/message/:groupId", h.Groups.SendMessage)
	groupRoutes.Get("/messages/:groupId", h.Groups.Messages)
	groupRoutes.Get("/shared-files/:username", h.Groups.SharedFiles)

	fileRoutes := api.Group("/file")
	fileRoutes.Post("/upload/:userId", h.Files.Upload)
	fileRoutes.Get("/download/:id", h.Files.Download)
	fileRoutes.Get("/download-url/:id", h.Files.DownloadURL)
	fileRoutes.Get("/viewall/:username", h.Files.ListForUser)
	fileRoutes.Delete("/delete/:id", h.Files.Delete)
}
