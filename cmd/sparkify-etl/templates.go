package main

const configTemplate = `# {{.Name}} pipeline configuration
pipeline:
  name: "{{.Name}}"
  description: "Load Sparkify song metadata and event logs into the star schema"
  # abort stops at the first failing file, continue skips it and reports it
  on_error: "continue"
  dry_run: false

source:
  song_data: "data/song_data"
  log_data: "data/log_data"
  extension: ".json"
  event_page: "NextSong"

# Sink database: postgres, pgx, sqlserver or sqlite.
# Leave dsn empty to build it from the .env variables.
sink:
  type: "postgres"
  dsn: ""
  create_tables: true

monitoring:
  log_level: "info"
  log_format: "console"
  progress_bar: true
  tracing:
    # OTLP gRPC collector, e.g. localhost:4317. Empty disables tracing.
    endpoint: ""
    service_name: "sparkify-etl"
    insecure: true
    sampling_ratio: 1.0`

const envTemplate = `# Sink Database - PostgreSQL (postgres, pgx)
POSTGRES_HOST=127.0.0.1
POSTGRES_PORT=5432
POSTGRES_DB=sparkifydb
POSTGRES_USER=student
POSTGRES_PASSWORD=student
POSTGRES_SSLMODE=disable

# Sink Database - SQL Server (sqlserver)
SQLSERVER_HOST=127.0.0.1
SQLSERVER_PORT=1433
SQLSERVER_DB=sparkifydb
SQLSERVER_USER=sa
SQLSERVER_PASSWORD=YourStrong@Passw0rd

# Sink Database - SQLite (sqlite)
SQLITE_PATH=sparkify.db

# Overrides every setting above when set
SPARKIFY_DSN=`

const dockerfileTemplate = `# Build stage
FROM golang:1.24-alpine AS builder

WORKDIR /app
COPY go.mod go.sum ./
RUN go mod download
COPY . .
RUN CGO_ENABLED=0 GOOS=linux go build -o sparkify-etl ./cmd/sparkify-etl

# Final stage
FROM alpine:latest

WORKDIR /app
COPY --from=builder /app/sparkify-etl .
COPY config.yaml .

ENTRYPOINT ["./sparkify-etl"]
CMD ["run"]`
