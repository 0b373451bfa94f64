// Command dbdump prints the contents of the imageforge database, one table
// per section. Handy for inspecting a deployment without a sqlite shell.
package main

import (
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/Tushar-web474/ImageForge/config"
	"github.com/Tushar-web474/ImageForge/database"
	"github.com/Tushar-web474/ImageForge/database/model"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("could not load .env: %v", err)
	}

	if err := database.InitDB(config.GetDBPath()); err != nil {
		log.Fatal(err)
	}
	defer database.CloseDB()

	db := database.GetDB()

	fmt.Println("=== Table: users ===")
	var users []model.User
	if err := db.Find(&users).Error; err != nil {
		log.Fatal(err)
	}
	if len(users) == 0 {
		fmt.Println("Table is empty.")
	} else {
		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "id\tusername\temail\tcreated_at")
		for _, u := range users {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.Id, u.Username, u.Email, u.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		w.Flush()
	}

	fmt.Println("\n=== Table: image_history ===")
	var images []model.ImageRecord
	if err := db.Find(&images).Error; err != nil {
		log.Fatal(err)
	}
	if len(images) == 0 {
		fmt.Println("Table is empty.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "id\tuser_id\tprompt\timage_path\tcreated_at")
	for _, img := range images {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n", img.Id, img.UserId, img.Prompt, img.ImagePath, img.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	w.Flush()
}
