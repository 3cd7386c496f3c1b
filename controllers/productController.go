package controllers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/reachfood/reachfood-api/models"
	"github.com/reachfood/reachfood-api/services"
)

type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

func (c *ProductController) GetProducts(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	params := services.ProductListParams{
		Page:     page,
		Limit:    limit,
		Category: ctx.Query("category"),
		Search:   ctx.Query("search"),
		// The public catalog only shows active products; admins pass all=true.
		ActiveOnly: ctx.Query("all") != "true",
	}
	if featured := ctx.Query("featured"); featured != "" {
		value := featured == "true"
		params.Featured = &value
	}

	products, pagination, err := c.products.GetProducts(params)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	sendPage(ctx, products, pagination)
}

func (c *ProductController) GetProduct(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	product, err := c.products.GetProductByID(id)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	sendData(ctx, http.StatusOK, product)
}

func (c *ProductController) CreateProduct(ctx *gin.Context) {
	var product models.Product
	if err := ctx.ShouldBindJSON(&product); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := c.products.CreateProduct(&product); err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	sendData(ctx, http.StatusCreated, product)
}

func (c *ProductController) UpdateProduct(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var product models.Product
	if err := ctx.ShouldBindJSON(&product); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	updated, err := c.products.UpdateProduct(id, &product)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	sendData(ctx, http.StatusOK, updated)
}

func getS3Uploader() (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

// UploadProductImage pushes the image to S3 and stores the resulting URL on
// the product.
func (c *ProductController) UploadProductImage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if _, err := c.products.GetProductByID(id); err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "No image uploaded")
		return
	}

	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Missing storage configuration")
		return
	}

	uploader, err := getS3Uploader()
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to configure AWS")
		return
	}

	f, err := file.Open()
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Unable to read uploaded file")
		return
	}
	defer f.Close()

	// Unique key to prevent overwrites
	key := fmt.Sprintf("products/%d-%s-%s", id, time.Now().Format("20060102150405"), file.Filename)

	result, err := uploader.Upload(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        f,
		ACL:         "public-read",
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	if err := c.products.SetProductImage(id, result.Location); err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	sendData(ctx, http.StatusOK, gin.H{"url": result.Location})
}

func (c *ProductController) GetPlans(ctx *gin.Context) {
	plans, err := c.products.GetPlans(ctx.Query("all") != "true")
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	sendData(ctx, http.StatusOK, plans)
}

func (c *ProductController) GetPlan(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	plan, err := c.products.GetPlanByID(id)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	sendData(ctx, http.StatusOK, plan)
}

func (c *ProductController) CreatePlan(ctx *gin.Context) {
	var plan models.SubscriptionPlan
	if err := ctx.ShouldBindJSON(&plan); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := c.products.CreatePlan(&plan); err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	sendData(ctx, http.StatusCreated, plan)
}

func (c *ProductController) UpdatePlan(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var plan models.SubscriptionPlan
	if err := ctx.ShouldBindJSON(&plan); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	updated, err := c.products.UpdatePlan(id, &plan)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	sendData(ctx, http.StatusOK, updated)
}
